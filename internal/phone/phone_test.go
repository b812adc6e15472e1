package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		number  string
		wantErr string
	}{
		{name: "india ok", code: "+91", number: "98765 43210"},
		{name: "india short", code: "+91", number: "98765", wantErr: "Phone for India must be 10 digits"},
		{name: "uk range low", code: "+44", number: "123456789"},
		{name: "uk range high", code: "+44", number: "12345678901", wantErr: "Phone for UK must be between 9 and 10 digits"},
		{name: "germany twelve", code: "+49", number: "(0151) 2345-6789"},
		{name: "germany thirteen", code: "+49", number: "(0151) 2345-67890", wantErr: "Phone for Germany must be between 10 and 12 digits"},
		{name: "singapore exact", code: "+65", number: "81234567"},
		{name: "unknown code fallback ok", code: "+354", number: "5551234"},
		{name: "unknown code fallback short", code: "+354", number: "123456", wantErr: "Phone length must be between 7 and 15 digits"},
		{name: "unknown code fallback long", code: "", number: "1234567890123456", wantErr: "Phone length must be between 7 and 15 digits"},
		{name: "empty", code: "+91", number: "", wantErr: "Phone number is required"},
		{name: "no digits", code: "+91", number: "--", wantErr: "Phone number is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.code, tt.number)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestLookup(t *testing.T) {
	r, ok := Lookup(" +971 ")
	assert.True(t, ok)
	assert.Equal(t, Rule{Min: 9, Max: 9, Name: "UAE"}, r)

	_, ok = Lookup("+999")
	assert.False(t, ok)
}
