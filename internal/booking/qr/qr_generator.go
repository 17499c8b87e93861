// Package qr issues the encrypted confirmation code a customer presents at
// the venue once their booking is confirmed.
package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"time"

	"bookmyspot/internal/models"

	"github.com/skip2/go-qrcode"
)

type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &Generator{secret: hashed[:]}
}

// confirmationPayload is what the venue's check-in scanner decrypts.
type confirmationPayload struct {
	BookingRef string    `json:"booking_ref"`
	VenueID    string    `json:"venue_id,omitempty"`
	Customer   string    `json:"customer"`
	GuestCount int       `json:"guest_count"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

// GenerateConfirmationQR encrypts the booking's check-in payload and
// renders it as a PNG QR code.
func (g *Generator) GenerateConfirmationQR(booking models.Booking) ([]byte, error) {
	payload := confirmationPayload{
		BookingRef: booking.BookingRef,
		Customer:   booking.Customer.Name,
		GuestCount: booking.GuestCount,
		StartDate:  booking.StartDate,
		EndDate:    booking.EndDate,
	}
	if booking.VenueID != nil {
		payload.VenueID = *booking.VenueID
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	encrypted, err := encryptAES(data, g.secret)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

func encryptAES(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
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
