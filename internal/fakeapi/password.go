package fakeapi

import "github.com/alexedwards/argon2id"

// hashParams are deliberately light; the fake only ever holds demo accounts.
var hashParams = &argon2id.Params{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// dummyHash is checked against when the user is unknown so that a login
// takes the same time either way.
var dummyHash, _ = hashPassword("not-a-password")

// hashPassword returns an encoded Argon2id hash that embeds its parameters.
func hashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, hashParams)
}

func verifyPassword(password, encodedHash string) bool {
	ok, err := argon2id.ComparePasswordAndHash(password, encodedHash)
	return err == nil && ok
}
