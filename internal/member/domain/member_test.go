package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var birth = time.Date(1995, 3, 15, 0, 0, 0, 0, time.UTC)

func TestNewMember(t *testing.T) {
	m, err := NewMember("looper01", "hash", "Kim", birth, "kim@loopers.io")
	require.NoError(t, err)
	assert.Equal(t, "looper01", m.LoginID)

	cases := []struct {
		name    string
		loginID string
		mName   string
		email   string
		wantErr error
	}{
		{"Blank login id", " ", "Kim", "kim@loopers.io", ErrLoginIDEmpty},
		{"Login id with symbols", "looper_01", "Kim", "kim@loopers.io", ErrLoginIDInvalidFormat},
		{"Blank name", "looper01", "", "kim@loopers.io", ErrNameEmpty},
		{"Blank email", "looper01", "Kim", "", ErrEmailEmpty},
		{"Email without domain", "looper01", "Kim", "kim@", ErrEmailInvalidFormat},
		{"Email without tld", "looper01", "Kim", "kim@loopers", ErrEmailInvalidFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMember(tc.loginID, "hash", tc.mName, birth, tc.email)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParseBirthDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	d, err := ParseBirthDate("19950315", now)
	require.NoError(t, err)
	assert.Equal(t, birth, d)

	_, err = ParseBirthDate("20240601", now)
	assert.NoError(t, err, "today is not in the future")

	_, err = ParseBirthDate("20240602", now)
	assert.ErrorIs(t, err, ErrBirthDateFuture)

	_, err = ParseBirthDate("", now)
	assert.ErrorIs(t, err, ErrBirthDateEmpty)

	_, err = ParseBirthDate("1995-03-15", now)
	assert.ErrorIs(t, err, ErrBirthDateInvalidFormat)

	_, err = ParseBirthDate("19951345", now)
	assert.ErrorIs(t, err, ErrBirthDateInvalidFormat)
}

func TestValidateRawPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"Valid", "Passw0rd!", nil},
		{"Exactly 8", "abcd1234", nil},
		{"Exactly 16", "abcdefgh12345678", nil},
		{"Too short", "abc123!", ErrPasswordTooShort},
		{"Too long", "abcdefgh123456789", ErrPasswordTooLong},
		{"Whitespace not allowed", "pass word1", ErrPasswordInvalidFormat},
		{"Non-ascii not allowed", "비밀번호12345678", ErrPasswordInvalidFormat},
		{"Contains birth date", "a19950315!", ErrPasswordHasBirthDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRawPassword(tc.password, birth)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	assert.ErrorIs(t, ValidateRawPassword("한글abc", birth), ErrPasswordTooShort, "length counts characters, not bytes")
}

func TestMember_MaskedName(t *testing.T) {
	assert.Equal(t, "Ki*", (&Member{Name: "Kim"}).MaskedName())
	assert.Equal(t, "*", (&Member{Name: "K"}).MaskedName())
	assert.Equal(t, "", (&Member{Name: ""}).MaskedName())
	assert.Equal(t, "홍길*", (&Member{Name: "홍길동"}).MaskedName())

	m := &Member{ID: 1, LoginID: "looper01", Name: "Kim", BirthDate: birth, Email: "kim@loopers.io"}
	r := m.MaskedResponse()
	assert.Equal(t, "Ki*", r.Name)
	assert.Equal(t, "19950315", r.BirthDate)
}
