package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if !CheckPassword("s3cret", digest) {
		t.Fatalf("expected password to verify against its own digest")
	}
	if CheckPassword("other", digest) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestHashPassword_FreshSalt(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	b, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if a == b {
		t.Fatalf("two digests of the same password must differ (fresh salt)")
	}
	if !CheckPassword("same", a) || !CheckPassword("same", b) {
		t.Fatalf("both digests must still verify")
	}
}

func TestCheckPassword_BadDigest(t *testing.T) {
	t.Parallel()

	if CheckPassword("whatever", "not-a-bcrypt-digest") {
		t.Fatalf("expected garbage digest to fail verification")
	}
}
