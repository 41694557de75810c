package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("password123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "password123" {
		t.Fatalf("hash equals plaintext")
	}
	if !Verify("password123", hash) {
		t.Fatalf("expected password to verify against its own hash")
	}
	if Verify("password124", hash) {
		t.Fatalf("wrong password verified")
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	h1, err := Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	h2, err := Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password are identical; salt not embedded per call")
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	if Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash verified")
	}
	if Verify("anything", "") {
		t.Fatalf("empty hash verified")
	}
}
