package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// BeforeSave never touches the transaction, so nil is enough here.
var mockTx *gorm.DB = nil

func TestUser_BeforeSave_HashesPassword(t *testing.T) {
	plainPassword := "mySecretPassword123"
	user := &User{
		FullName: "Asha Verma",
		Phone:    "+919876543210",
		Password: plainPassword,
	}

	err := user.BeforeSave(mockTx)

	require.NoError(t, err)
	assert.NotEqual(t, plainPassword, user.Password)
	assert.True(t, len(user.Password) > 50, "bcrypt hash should be longer than 50 characters")

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(plainPassword))
	assert.NoError(t, err, "hash should match the original password")
}

func TestUser_BeforeSave_SkipsAlreadyHashedPassword(t *testing.T) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("alreadyHashed"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &User{
		FullName: "Asha Verma",
		Phone:    "+919876543210",
		Password: string(hashedPassword),
	}
	originalHash := user.Password

	err = user.BeforeSave(mockTx)

	require.NoError(t, err)
	assert.Equal(t, originalHash, user.Password, "an existing bcrypt hash must not be re-hashed")
}

func TestUser_CheckPassword(t *testing.T) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &User{Password: string(hashedPassword)}

	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestUser_IsAdmin(t *testing.T) {
	assert.False(t, (&User{Role: RoleCitizen}).IsAdmin())
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
}
