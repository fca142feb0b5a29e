package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"

	"folio/internal/auth"
	"folio/internal/models"
)

// fakeUserStore is an in-memory UserStore for handler tests.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.AdminUser
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]*models.AdminUser{}}
}

func (f *fakeUserStore) add(u *models.AdminUser) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
}

func (f *fakeUserStore) remove(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

func (f *fakeUserStore) FindByEmail(email string) (*models.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByID(id uuid.UUID) (*models.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	found := *u
	return &found, nil
}

func (f *fakeUserStore) UpdatePasswordHash(id uuid.UUID, newHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id].PasswordHash = newHash
	return nil
}

func (f *fakeUserStore) SetTOTPSecret(id uuid.UUID, secret string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id].TOTPSecret = &secret
	return nil
}

func (f *fakeUserStore) EnableTOTP(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id].TOTPEnabled = true
	return nil
}

func (f *fakeUserStore) DisableTOTP(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id].TOTPSecret = nil
	f.users[id].TOTPEnabled = false
	return nil
}

const (
	testEmail    = "owner@example.com"
	testPassword = "StrongP@ssw0rd!123"
	testName     = "Site Owner"
)

// seedUser adds a user with the test password and returns it.
func seedUser(t *testing.T, users *fakeUserStore) *models.AdminUser {
	t.Helper()
	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &models.AdminUser{
		ID:           uuid.New(),
		Email:        testEmail,
		PasswordHash: hash,
		DisplayName:  testName,
	}
	users.add(u)
	return u
}

func testSigner() *auth.Signer {
	return auth.NewSigner(auth.TokenConfig{Secret: "test-secret", Expiry: "1h"})
}

// decodeError decodes the error envelope and returns the error code.
func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (body %q)", err, rr.Body.String())
	}
	if body.Success {
		t.Fatalf("expected success=false, body %q", rr.Body.String())
	}
	return body.Error.Code
}

// decodeData decodes the success envelope's data field into dst.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var body struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (body %q)", err, rr.Body.String())
	}
	if !body.Success {
		t.Fatalf("expected success=true, body %q", rr.Body.String())
	}
	if err := json.Unmarshal(body.Data, dst); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}
