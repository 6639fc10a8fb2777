package validator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"3f2504e0-4f89-41d3-9a0c-0305e82c3301",
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"3F2504E0-4F89-41D3-9A0C-0305E82C3301",
	}
	invalid := []string{
		"3f2504e04f8941d39a0c0305e82c3301",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"urn:uuid:3f2504e0-4f89-41d3-9a0c-0305e82c3301",
		"",
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-02-30", "2023/01/01", "01-01-2023", "", "2023-13-01"}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	_, ok := IsValidMonth("2024-05")
	assert.True(t, ok)
	_, ok = IsValidMonth("2024-5")
	assert.False(t, ok)
	_, ok = IsValidMonth("2024-13")
	assert.False(t, ok)
}

func TestIsValidPassword(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"abc123", true},
		{"Secure9", true},
		{"abcdef", false},
		{"123456", false},
		{"ab12", false},
		{"abc 123", false},
		{"abc123!", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsValidPassword(c.input), c.input)
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	require.NoError(t, errs.Err())

	errs.Add("from", "from is required")
	errs.Add("to", "to is required")

	err := errs.Err()
	require.Error(t, err)
	assert.Equal(t, "from: from is required; to: to is required", err.Error())
	assert.Equal(t, map[string]string{"from": "from is required", "to": "to is required"}, errs.ToMap())
}

type structSample struct {
	Direction string  `json:"callDirection" validate:"required,oneof=INBOUND OUTBOUND"`
	Email     string  `json:"customerEmail" validate:"required,email"`
	Amount    float64 `json:"profitAmount" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	err := Struct(structSample{Direction: "INBOUND", Email: "a@b.cd", Amount: 10})
	require.NoError(t, err)

	err = Struct(structSample{Direction: "SIDEWAYS", Email: "nope", Amount: -1})
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Equal(t, "callDirection must be one of [INBOUND OUTBOUND]", fields["callDirection"])
	assert.Equal(t, "customerEmail must be a valid email", fields["customerEmail"])
	assert.Equal(t, "profitAmount must be greater than or equal to 0", fields["profitAmount"])
}

func TestPolicyError(t *testing.T) {
	kind := errors.New("too many days")
	err := fmt.Errorf("request leave: %w", NewPolicyError(kind, "More than 5 days please contact HR."))

	assert.ErrorIs(t, err, kind)

	var pe *PolicyError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "More than 5 days please contact HR.", pe.Message)
}
