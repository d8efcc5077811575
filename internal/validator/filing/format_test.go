package filing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxsage/internal/itr"
	"taxsage/internal/validator/filing"
)

func runRule(t *testing.T, key string, in *itr.FilingInput) []filing.ValidationResult {
	t.Helper()
	for _, v := range filing.AllBuiltinValidators() {
		if v.RuleKey() == key {
			return v.Validate(context.Background(), in)
		}
	}
	t.Fatalf("no builtin validator with key %s", key)
	return nil
}

func TestPANFormat(t *testing.T) {
	cases := []struct {
		pan string
		ok  bool
	}{
		{"ABCDE1234F", true},
		{"ZZZZZ0000A", true},
		{"abcde1234f", false},
		{"ABCD1234F", false},   // four letters
		{"ABCDE12345", false},  // digit in last slot
		{"ABCDE1234FX", false}, // too long
		{"ABCDE123F", false},   // three digits
	}
	for _, tc := range cases {
		t.Run(tc.pan, func(t *testing.T) {
			in := &itr.FilingInput{}
			in.PersonalInfo.PAN = tc.pan
			results := runRule(t, "fmt.personal.pan", in)
			require.Len(t, results, 1)
			assert.Equal(t, tc.ok, results[0].Passed)
		})
	}
}

func TestPhoneFormat(t *testing.T) {
	cases := []struct {
		phone string
		ok    bool
	}{
		{"9876543210", true},
		{"6000000000", true},
		{"5876543210", false}, // must start 6-9
		{"987654321", false},  // nine digits
		{"98765432100", false},
		{"+919876543210", false},
	}
	for _, tc := range cases {
		t.Run(tc.phone, func(t *testing.T) {
			in := &itr.FilingInput{}
			in.PersonalInfo.Phone = tc.phone
			results := runRule(t, "fmt.personal.phone", in)
			require.Len(t, results, 1)
			assert.Equal(t, tc.ok, results[0].Passed)
		})
	}
}

func TestPincodeFormat(t *testing.T) {
	cases := []struct {
		pin string
		ok  bool
	}{
		{"600040", true},
		{"110001", true},
		{"060040", false}, // leading zero
		{"60004", false},
		{"6000401", false},
		{"6000A0", false},
	}
	for _, tc := range cases {
		t.Run(tc.pin, func(t *testing.T) {
			in := &itr.FilingInput{}
			in.PersonalInfo.Address.Pincode = tc.pin
			results := runRule(t, "fmt.address.pincode", in)
			require.Len(t, results, 1)
			assert.Equal(t, tc.ok, results[0].Passed)
		})
	}
}

func TestEmptyFieldSkipsFormatCheck(t *testing.T) {
	in := &itr.FilingInput{}
	for _, key := range []string{"fmt.personal.pan", "fmt.personal.email", "fmt.personal.phone", "fmt.address.pincode"} {
		results := runRule(t, key, in)
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed, "empty field should skip %s", key)
		assert.Contains(t, results[0].Message, "skipping")
	}
}
