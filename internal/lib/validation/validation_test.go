package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		email     string
		wantField string
	}{
		{
			name:     "корректные username и email",
			username: "carol_99",
			email:    "carol@example.com",
		},
		{
			name:     "username с точкой и дефисом",
			username: "she.ra-01",
			email:    "shera@example.org",
		},
		{
			name:      "пустой username",
			username:  "",
			email:     "carol@example.com",
			wantField: "username",
		},
		{
			name:      "слишком короткий username",
			username:  "ab",
			email:     "carol@example.com",
			wantField: "username",
		},
		{
			name:      "слишком длинный username",
			username:  strings.Repeat("a", 151),
			email:     "carol@example.com",
			wantField: "username",
		},
		{
			name:      "недопустимые символы в username",
			username:  "carol smith",
			email:     "carol@example.com",
			wantField: "username",
		},
		{
			name:      "пустой email",
			username:  "carol",
			email:     "",
			wantField: "email",
		},
		{
			name:      "email без домена",
			username:  "carol",
			email:     "carol@",
			wantField: "email",
		},
		{
			name:      "email без @",
			username:  "carol",
			email:     "carol.example.com",
			wantField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := Profile(tt.username, tt.email)
			if tt.wantField == "" {
				assert.Nil(t, verr)
				return
			}
			require.NotNil(t, verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.NotEmpty(t, verr.Reason)
		})
	}
}

func TestProfile_UsernameBoundaryLengths(t *testing.T) {
	assert.Nil(t, Profile(strings.Repeat("a", 3), "a@b.com"))
	assert.Nil(t, Profile(strings.Repeat("a", 150), "a@b.com"))
}

func TestPasswordChange(t *testing.T) {
	policy := DefaultPasswordPolicy()

	tests := []struct {
		name    string
		current string
		new     string
		wantErr bool
	}{
		{
			name:    "валидный новый пароль",
			current: "OldPass1",
			new:     "NewPass1",
			wantErr: false,
		},
		{
			name:    "ровно восемь символов с буквой и цифрой",
			current: "OldPass1",
			new:     "abcdefg1",
			wantErr: false,
		},
		{
			name:    "семь символов",
			current: "OldPass1",
			new:     "abcdef1",
			wantErr: true,
		},
		{
			name:    "нет цифры",
			current: "OldPass1",
			new:     "abcdefgh",
			wantErr: true,
		},
		{
			name:    "нет буквы",
			current: "OldPass1",
			new:     "12345678",
			wantErr: true,
		},
		{
			name:    "совпадает с текущим",
			current: "SamePass1",
			new:     "SamePass1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := PasswordChange(policy, tt.current, tt.new)
			if tt.wantErr {
				require.NotNil(t, verr)
				assert.Equal(t, "new_password", verr.Field)
			} else {
				assert.Nil(t, verr)
			}
		})
	}
}

func TestPasswordChange_PolicyToggles(t *testing.T) {
	relaxed := PasswordPolicy{MinLength: 4}

	// все дополнительные правила выключены
	assert.Nil(t, PasswordChange(relaxed, "same", "same"))
	assert.Nil(t, PasswordChange(relaxed, "old", "1234"))
	assert.Nil(t, PasswordChange(relaxed, "old", "abcd"))

	onlyReuse := PasswordPolicy{MinLength: 4, DisallowReuse: true}
	require.NotNil(t, PasswordChange(onlyReuse, "same", "same"))
}

func TestError_Error(t *testing.T) {
	verr := &Error{Field: "email", Reason: "must be a valid email address"}
	assert.Contains(t, verr.Error(), "email")
	assert.Contains(t, verr.Error(), "must be a valid email address")
}
