package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muneebabadar/result-management-system-kkamhs/app/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-Passw0rd")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-Passw0rd", hash)

	assert.True(t, CheckPasswordHash("s3cret-Passw0rd", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
	assert.False(t, CheckPasswordHash("s3cret-Passw0rd", "not-a-bcrypt-hash"))
}

func TestJWTRoundTrip(t *testing.T) {
	user := &models.User{
		ID:    "11111111-2222-3333-4444-555555555555",
		Name:  "Head Teacher",
		Email: "head@kkamhs.edu",
		Role:  models.RoleAdmin,
	}

	token, err := GenerateJWT(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Name, claims.Name)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "kkamhs", claims.Issuer)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)

	_, err = ValidateJWT("")
	assert.Error(t, err)
}

func TestValidateJWTRejectsTamperedToken(t *testing.T) {
	user := &models.User{ID: "u1", Email: "t@kkamhs.edu", Role: models.RoleTeacher}
	token, err := GenerateJWT(user)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ValidateJWT(tampered)
	assert.Error(t, err)
}
