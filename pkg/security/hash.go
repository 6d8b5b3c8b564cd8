package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword gera o digest SHA-256 em hexadecimal de uma senha.
// Arquivos de banco criados por versões anteriores do sistema armazenam
// exatamente este formato, sem salt; trocar o digest invalidaria todas as
// credenciais já gravadas.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPassword compara uma senha em claro com um digest armazenado
func CheckPassword(password, storedHash string) bool {
	computed := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
