package adaptive

import (
	"bytes"
	"errors"
	"testing"
)

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

var allTypes = []CipherType{CipherAESGCM, CipherChaCha20}

func TestNew(t *testing.T) {
	c, err := New(testKey())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Type() != CipherAESGCM && c.Type() != CipherChaCha20 {
		t.Errorf("New() returned unknown cipher type: %s", c.Type())
	}
}

func TestNewWithType_KeySize(t *testing.T) {
	for _, typ := range allTypes {
		for _, size := range []int{0, 16, 24, 31, 33} {
			if _, err := NewWithType(make([]byte, size), typ); err == nil {
				t.Errorf("NewWithType(%s) with %d-byte key should fail", typ, size)
			}
		}
	}
}

func TestNewWithType_Unknown(t *testing.T) {
	if _, err := NewWithType(testKey(), "rot13"); err == nil {
		t.Error("NewWithType(unknown) should return error")
	}
}

func TestEncryptDecrypt(t *testing.T) {
	for _, typ := range allTypes {
		t.Run(string(typ), func(t *testing.T) {
			c, err := NewWithType(testKey(), typ)
			if err != nil {
				t.Fatalf("NewWithType() error = %v", err)
			}
			if c.Type() != typ {
				t.Errorf("Type() = %s, want %s", c.Type(), typ)
			}

			plaintext := []byte("Xq3vZ9-bearer-token")
			aad := []byte("token")

			sealed, err := c.Encrypt(plaintext, aad)
			if err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}
			if len(sealed) != len(plaintext)+c.Overhead() {
				t.Errorf("sealed len = %d, want %d", len(sealed), len(plaintext)+c.Overhead())
			}
			if bytes.Contains(sealed, plaintext) {
				t.Error("ciphertext contains plaintext")
			}

			opened, err := c.Decrypt(sealed, aad)
			if err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}
			if !bytes.Equal(opened, plaintext) {
				t.Errorf("Decrypt() = %q, want %q", opened, plaintext)
			}

			if _, err := c.Decrypt(sealed, []byte("theme")); err == nil {
				t.Error("Decrypt() with different additional data should fail")
			}

			sealed[len(sealed)-1] ^= 0xff
			if _, err := c.Decrypt(sealed, aad); err == nil {
				t.Error("Decrypt() of tampered ciphertext should fail")
			}

			if _, err := c.Decrypt([]byte{1, 2}, aad); !errors.Is(err, ErrCiphertextTooShort) {
				t.Errorf("Decrypt(short) error = %v, want ErrCiphertextTooShort", err)
			}
		})
	}
}

func TestEncrypt_Uniqueness(t *testing.T) {
	c, err := New(testKey())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	a, _ := c.Encrypt([]byte("same"), nil)
	b, _ := c.Encrypt([]byte("same"), nil)
	if bytes.Equal(a, b) {
		t.Error("two encryptions of the same plaintext should differ")
	}
}
