// Package token はベアラートークンの発行と検証を提供します。
// トークンは {id, name} ペイロードをAES-GCMで暗号化したうえでHS256署名したJWTです。
package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL はトークンの既定の有効期間（8時間）です。
const TTL = 8 * time.Hour

// ErrInvalidToken is returned when a token cannot be verified or decrypted.
var ErrInvalidToken = errors.New("invalid token")

// Payload はトークンに埋め込まれる暗号化ペイロードです。
type Payload struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Issuer はトークンの発行と検証を行います。
type Issuer struct {
	jwtKey []byte
	encKey [32]byte
	ttl    time.Duration
}

// NewIssuer は署名鍵と暗号化鍵からIssuerを生成します。
// ttl が0以下の場合は既定の8時間になります。
func NewIssuer(jwtKey, encryptKey string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = TTL
	}
	return &Issuer{
		jwtKey: []byte(jwtKey),
		encKey: sha256.Sum256([]byte(encryptKey)),
		ttl:    ttl,
	}
}

// Sign は指定ユーザーの署名済みトークンを発行します。
// ペイロードは署名とは別に対称暗号化されます。
func (i *Issuer) Sign(userID uint, name string) (string, error) {
	plain, err := json.Marshal(Payload{ID: userID, Name: name})
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	encrypted, err := i.encrypt(plain)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt payload: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"payload": encrypted,
		"iat":     now.Unix(),
		"exp":     now.Add(i.ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.jwtKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify はトークンを検証し、復号したペイロードを返します。
// 署名・有効期限・復号のいずれかに失敗した場合はErrInvalidTokenを返します。
func (i *Issuer) Verify(tokenStr string) (*Payload, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		// 署名アルゴリズムの確認（HMACのみ許可）
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	encrypted, ok := claims["payload"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	plain, err := i.decrypt(encrypted)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var p Payload
	if err := json.Unmarshal(plain, &p); err != nil {
		return nil, ErrInvalidToken
	}
	return &p, nil
}

// encrypt はAES-256-GCMで暗号化し、nonceを先頭に付けてbase64で返します。
func (i *Issuer) encrypt(plain []byte) (string, error) {
	block, err := aes.NewCipher(i.encKey[:])
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, plain, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// decrypt はencryptの逆変換を行います。
func (i *Issuer) decrypt(encoded string) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(i.encKey[:])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, ErrInvalidToken
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
