package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"usherhub/internal/entity"
)

func TestRegisterConsumesCode(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	code := f.seedCode(t, "AB12CD34", f.clock.Now().Add(time.Hour))

	result, err := f.svc.Register(ctx, RegisterInput{
		Name:       "Alae Usher",
		Email:      "Alae@Example.com",
		Password:   "hunter22",
		SignupCode: "ab12cd34",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a session token")
	}
	if result.User.Role != entity.UserRoleUsher {
		t.Fatalf("registration must force the usher role, got %s", result.User.Role)
	}
	if result.User.Email != "alae@example.com" {
		t.Fatalf("email should be normalized, got %s", result.User.Email)
	}
	if !result.NeedsProfilePicture {
		t.Fatal("no image was uploaded, flag should be set")
	}

	stored, err := f.codes.FindByID(ctx, code.ID)
	if err != nil {
		t.Fatalf("find code: %v", err)
	}
	if !stored.IsUsed {
		t.Fatal("code should be consumed")
	}
	if stored.UsedBy == nil || *stored.UsedBy != result.User.ID {
		t.Fatalf("code should record the consuming user, got %v", stored.UsedBy)
	}
	if result.User.SignupCodeID == nil || *result.User.SignupCodeID != code.ID {
		t.Fatal("user should reference the consumed code")
	}

	f.email.waitForNotification(t)
}

func TestRegisterForcesUsherRole(t *testing.T) {
	f := newAuthFixture(t)
	f.seedCode(t, "AB12CD34", f.clock.Now().Add(time.Hour))

	result, err := f.svc.Register(context.Background(), RegisterInput{
		Name:       "Sneaky Admin",
		Email:      "sneak@example.com",
		Password:   "hunter22",
		SignupCode: "AB12CD34",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.User.Role != entity.UserRoleUsher {
		t.Fatalf("got role %s", result.User.Role)
	}
}

func TestRegisterRejectsExpiredCode(t *testing.T) {
	f := newAuthFixture(t)
	code := f.seedCode(t, "AB12CD34", f.clock.Now().Add(-time.Minute))

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Name:       "Late Usher",
		Email:      "late@example.com",
		Password:   "hunter22",
		SignupCode: "AB12CD34",
	})
	if !errors.Is(err, ErrInvalidSignupCode) {
		t.Fatalf("expected ErrInvalidSignupCode, got %v", err)
	}

	stored, _ := f.codes.FindByID(context.Background(), code.ID)
	if stored.IsUsed {
		t.Fatal("expired code must stay unused")
	}
	user, _ := f.users.FindByEmail(context.Background(), "late@example.com")
	if user != nil {
		t.Fatal("no user row should exist after a rejected registration")
	}
}

func TestRegisterRejectsUnknownCode(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Name:       "No Code",
		Email:      "nocode@example.com",
		Password:   "hunter22",
		SignupCode: "ZZ99ZZ99",
	})
	if !errors.Is(err, ErrInvalidSignupCode) {
		t.Fatalf("expected ErrInvalidSignupCode, got %v", err)
	}
}

func TestRegisterDuplicateEmailLeavesCodeUnused(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.seedUser(t, "taken@example.com", "hunter22", entity.UserRoleUsher)
	code := f.seedCode(t, "AB12CD34", f.clock.Now().Add(time.Hour))

	_, err := f.svc.Register(ctx, RegisterInput{
		Name:       "Second Claim",
		Email:      "Taken@Example.com",
		Password:   "hunter22",
		SignupCode: "AB12CD34",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	stored, _ := f.codes.FindByID(ctx, code.ID)
	if stored.IsUsed {
		t.Fatal("failed registration must not burn the code")
	}
}

func TestRegisterCodeRaceLoserIsRemoved(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	code := f.seedCode(t, "AB12CD34", f.clock.Now().Add(time.Hour))

	first, err := f.svc.Register(ctx, RegisterInput{
		Name:       "Winner",
		Email:      "winner@example.com",
		Password:   "hunter22",
		SignupCode: "AB12CD34",
	})
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err = f.svc.Register(ctx, RegisterInput{
		Name:       "Loser",
		Email:      "loser@example.com",
		Password:   "hunter22",
		SignupCode: "AB12CD34",
	})
	if !errors.Is(err, ErrInvalidSignupCode) {
		t.Fatalf("expected ErrInvalidSignupCode for reused code, got %v", err)
	}

	loser, _ := f.users.FindByEmail(ctx, "loser@example.com")
	if loser != nil {
		t.Fatal("losing registration must not leave a user row behind")
	}
	stored, _ := f.codes.FindByID(ctx, code.ID)
	if stored.UsedBy == nil || *stored.UsedBy != first.User.ID {
		t.Fatal("code must stay bound to the first registrant")
	}
}

func TestRegisterRejectsBlankFields(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Name:     "No Code Given",
		Email:    "x@example.com",
		Password: "hunter22",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegisterUploadsProfileImage(t *testing.T) {
	f := newAuthFixture(t)
	f.seedCode(t, "AB12CD34", f.clock.Now().Add(time.Hour))

	result, err := f.svc.Register(context.Background(), RegisterInput{
		Name:       "Pictured",
		Email:      "pictured@example.com",
		Password:   "hunter22",
		SignupCode: "AB12CD34",
		Image:      []byte("fake-jpeg-bytes"),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.User.Profile.ProfileImage == "" {
		t.Fatal("image URL should be stored")
	}
	if result.NeedsProfilePicture {
		t.Fatal("flag should clear when an image was uploaded")
	}
}

func TestRegisterSurvivesImageUploadFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.svc.blobs = stubBlobStore{err: errors.New("bucket unreachable")}
	f.seedCode(t, "AB12CD34", f.clock.Now().Add(time.Hour))

	result, err := f.svc.Register(context.Background(), RegisterInput{
		Name:       "Resilient",
		Email:      "resilient@example.com",
		Password:   "hunter22",
		SignupCode: "AB12CD34",
		Image:      []byte("fake-jpeg-bytes"),
	})
	if err != nil {
		t.Fatalf("register should succeed without the image, got %v", err)
	}
	if result.User.Profile.ProfileImage != "" {
		t.Fatal("no image URL should be stored after a failed upload")
	}
	if !result.NeedsProfilePicture {
		t.Fatal("flag should remain set after a failed upload")
	}
}

func TestLoginSuccess(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "usher@example.com", "hunter22", entity.UserRoleUsher)

	result, err := f.svc.Login(ctx, LoginInput{Email: "  Usher@Example.COM ", Password: "hunter22"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.User.ID != user.ID {
		t.Fatal("wrong user returned")
	}
	if !result.NeedsProfilePicture {
		t.Fatal("usher without image should be flagged")
	}

	stored, _ := f.users.FindByID(ctx, user.ID)
	if stored.LastLoginAt == nil || !stored.LastLoginAt.Equal(f.clock.Now()) {
		t.Fatalf("lastLogin should be stamped with the clock time, got %v", stored.LastLoginAt)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "usher@example.com", "hunter22", entity.UserRoleUsher)

	_, err := f.svc.Login(context.Background(), LoginInput{Email: "usher@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "hunter22"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "gone@example.com", "hunter22", entity.UserRoleUsher)
	user.IsActive = false
	if err := f.users.Update(ctx, user); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, err := f.svc.Login(ctx, LoginInput{Email: "gone@example.com", Password: "hunter22"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("deactivated account must look like bad credentials, got %v", err)
	}
}

func TestLoginDetectsCorruptHash(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "corrupt@example.com", "hunter22", entity.UserRoleUsher)
	user.PasswordHash = "plaintext-not-a-hash"
	if err := f.users.Update(ctx, user); err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	_, err := f.svc.Login(ctx, LoginInput{Email: "corrupt@example.com", Password: "hunter22"})
	if !errors.Is(err, ErrCorruptPasswordHash) {
		t.Fatalf("expected ErrCorruptPasswordHash, got %v", err)
	}
}

func TestUpdateOwnProfileRejectsPrivilegedFields(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "self@example.com", "hunter22", entity.UserRoleUsher)

	bio := "Ten seasons of gala experience"
	inactive := false
	updated, rejected, err := f.svc.UpdateOwnProfile(ctx, user.ID, UserUpdate{
		IsActive: &inactive,
		Profile:  ProfileUpdate{Bio: &bio, Skills: []string{"crowd flow", "vip seating"}},
	}, []string{"bio", "skills", "isActive", "role"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Profile.Bio != bio {
		t.Fatal("bio should be applied")
	}
	if len(updated.Profile.Skills) != 2 {
		t.Fatalf("skills should be applied, got %v", updated.Profile.Skills)
	}
	if !updated.IsActive {
		t.Fatal("self update must not deactivate the account")
	}

	want := map[string]bool{"isActive": true, "role": true}
	if len(rejected) != 2 {
		t.Fatalf("expected 2 rejected fields, got %v", rejected)
	}
	for _, field := range rejected {
		if !want[field] {
			t.Fatalf("unexpected rejected field %s", field)
		}
	}

	stored, _ := f.users.FindByID(ctx, user.ID)
	if stored.PasswordHash != user.PasswordHash {
		t.Fatal("re-saving a profile must not alter the stored password hash")
	}
}

func TestReplaceProfileImageClearsRejection(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "rejected@example.com", "hunter22", entity.UserRoleUsher)
	user.Profile.ProfileImageRejected = true
	user.Profile.ProfileImageRejectionReason = "blurry"
	if err := f.users.Update(ctx, user); err != nil {
		t.Fatalf("seed rejection: %v", err)
	}

	updated, err := f.svc.ReplaceProfileImage(ctx, user.ID, []byte("fresh-jpeg"))
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if updated.Profile.ProfileImage == "" {
		t.Fatal("new image URL should be stored")
	}
	if updated.Profile.ProfileImageRejected || updated.Profile.ProfileImageRejectionReason != "" {
		t.Fatal("rejection flags must clear on replacement")
	}
}
