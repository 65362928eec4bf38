package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxtrack/internal/models"
)

func TestNormalizeMAC(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"colon uppercase", "AA:BB:CC:DD:EE:FF", "AA:BB:CC:DD:EE:FF", nil},
		{"colon lowercase", "aa:bb:cc:dd:ee:ff", "AA:BB:CC:DD:EE:FF", nil},
		{"dash lowercase", "aa-bb-cc-dd-ee-ff", "AA:BB:CC:DD:EE:FF", nil},
		{"dash mixed case", "Aa-bB-cC-dD-eE-fF", "AA:BB:CC:DD:EE:FF", nil},
		{"empty", "", "", ErrMissingRequired},
		{"too short", "AA:BB:CC:DD:EE", "", ErrInvalidFormat},
		{"too long", "AA:BB:CC:DD:EE:FF:00", "", ErrInvalidFormat},
		{"no separators", "AABBCCDDEEFF", "", ErrInvalidFormat},
		{"dot separators", "AABB.CCDD.EEFF", "", ErrInvalidFormat},
		{"non-hex digits", "GG:BB:CC:DD:EE:FF", "", ErrInvalidFormat},
		{"trailing separator", "AA:BB:CC:DD:EE:FF:", "", ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeMAC(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeMACEquivalentForms(t *testing.T) {
	// Dash and colon groupings of the same address must canonicalize
	// identically.
	a, err := NormalizeMAC("aa-bb-cc-dd-ee-ff")
	require.NoError(t, err)
	b, err := NormalizeMAC("AA:BB:CC:DD:EE:FF")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestValidateIP(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "192.168.1.100", false},
		{"single digits", "1.2.3.4", false},
		// Out-of-range octets pass; only the digit-group shape is checked.
		{"out of range octets", "999.999.999.999", false},
		{"three groups", "192.168.1", true},
		{"five groups", "192.168.1.1.1", true},
		{"four digit group", "1234.1.1.1", true},
		{"letters", "a.b.c.d", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIP(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	ip := "10.0.0.5"

	in := models.BoxCreate{
		MACAddress: "aa-bb-cc-dd-ee-ff",
		IPAddress:  &ip,
		Process:    "etch",
	}

	out, err := Create(in)
	require.NoError(t, err)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", out.MACAddress)
	assert.Equal(t, "ETCH", out.Process)
	assert.Equal(t, &ip, out.IPAddress)
}

func TestCreateFieldErrors(t *testing.T) {
	badIP := "not-an-ip"

	tests := []struct {
		name      string
		payload   models.BoxCreate
		wantField string
		wantErr   error
	}{
		{
			"missing mac",
			models.BoxCreate{Process: "ETCH"},
			"mac_address", ErrMissingRequired,
		},
		{
			"bad mac",
			models.BoxCreate{MACAddress: "nope", Process: "ETCH"},
			"mac_address", ErrInvalidFormat,
		},
		{
			"bad ip",
			models.BoxCreate{MACAddress: "AA:BB:CC:DD:EE:FF", IPAddress: &badIP, Process: "ETCH"},
			"ip_address", ErrInvalidFormat,
		},
		{
			"missing process",
			models.BoxCreate{MACAddress: "AA:BB:CC:DD:EE:FF"},
			"process", ErrMissingRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Create(tt.payload)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.wantField, fieldErr.Field)
		})
	}
}

func TestUpdate(t *testing.T) {
	in := models.BoxUpdate{
		MACAddress: models.String("aa-bb-cc-dd-ee-ff"),
		Process:    models.String("cmp"),
		Note:       models.Null(),
	}

	out, err := Update(in)
	require.NoError(t, err)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", out.MACAddress.Value)
	assert.Equal(t, "CMP", out.Process.Value)
	assert.True(t, out.Note.Set)
	assert.False(t, out.Note.Valid)
}

func TestUpdateAbsentFieldsUntouched(t *testing.T) {
	out, err := Update(models.BoxUpdate{})
	require.NoError(t, err)
	assert.False(t, out.MACAddress.Set)
	assert.False(t, out.Process.Set)
}

func TestUpdateFieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload models.BoxUpdate
		wantErr error
	}{
		{"null mac", models.BoxUpdate{MACAddress: models.Null()}, ErrMissingRequired},
		{"empty mac", models.BoxUpdate{MACAddress: models.String("")}, ErrMissingRequired},
		{"bad mac", models.BoxUpdate{MACAddress: models.String("zz")}, ErrInvalidFormat},
		{"bad ip", models.BoxUpdate{IPAddress: models.String("1.2.3")}, ErrInvalidFormat},
		{"null process", models.BoxUpdate{Process: models.Null()}, ErrMissingRequired},
		{"empty process", models.BoxUpdate{Process: models.String("")}, ErrMissingRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Update(tt.payload)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
