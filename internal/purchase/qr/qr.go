// Package qr issues the encrypted gate passes handed to visitors. The
// pass payload is AES-encrypted JSON wrapped in a QR image; the gate
// scanner decrypts it with the shared secret.
package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"

	"github.com/skip2/go-qrcode"

	"parkpass/internal/models"
)

type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &Generator{secret: hashed[:]}
}

// GenerateEncryptedQR encrypts the pass and encodes it as a 256px QR
// image.
func (g *Generator) GenerateEncryptedQR(pass models.TicketPass) ([]byte, error) {
	encrypted, err := g.EncryptPass(pass)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

// EncryptPass returns the base64 ciphertext that a QR image carries.
func (g *Generator) EncryptPass(pass models.TicketPass) (string, error) {
	data, err := json.Marshal(pass)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(g.secret)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// DecryptPass reverses EncryptPass, recovering the pass a scanned QR
// code was issued for.
func (g *Generator) DecryptPass(encrypted string) (*models.TicketPass, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < aes.BlockSize {
		return nil, errors.New("ciphertext too short")
	}

	block, err := aes.NewCipher(g.secret)
	if err != nil {
		return nil, err
	}

	iv := ciphertext[:aes.BlockSize]
	data := make([]byte, len(ciphertext)-aes.BlockSize)
	stream := cipher.NewCFBDecrypter(block, iv)
	stream.XORKeyStream(data, ciphertext[aes.BlockSize:])

	var pass models.TicketPass
	if err := json.Unmarshal(data, &pass); err != nil {
		return nil, errors.New("invalid pass payload")
	}
	return &pass, nil
}
