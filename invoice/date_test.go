package invoice

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2026-03-15")
	require.NoError(t, err)
	require.Equal(t, "2026-03-15", d.String())

	zero, err := ParseDate("")
	require.NoError(t, err)
	require.True(t, zero.IsZero())

	_, err = ParseDate("15/03/2026")
	require.Error(t, err)
}

func TestDateAddDays(t *testing.T) {
	t.Parallel()

	d := NewDate(2026, 1, 31)
	require.Equal(t, "2026-03-02", d.AddDays(30).String())
	require.True(t, Date{}.AddDays(30).IsZero())
}

func TestDateDaysUntil(t *testing.T) {
	t.Parallel()

	a := NewDate(2026, 3, 1)
	b := NewDate(2026, 3, 31)
	require.Equal(t, 30, a.DaysUntil(b))
	require.Equal(t, -30, b.DaysUntil(a))
	require.Equal(t, 0, a.DaysUntil(a))
}

func TestDateJSONRoundTrip(t *testing.T) {
	t.Parallel()

	type payload struct {
		Due Date `json:"due"`
	}

	encoded, err := json.Marshal(payload{Due: NewDate(2026, 3, 15)})
	require.NoError(t, err)
	require.JSONEq(t, `{"due":"2026-03-15"}`, string(encoded))

	var decoded payload
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Equal(t, "2026-03-15", decoded.Due.String())
}

func TestDateJSONNull(t *testing.T) {
	t.Parallel()

	type payload struct {
		Due Date `json:"due"`
	}

	encoded, err := json.Marshal(payload{})
	require.NoError(t, err)
	require.JSONEq(t, `{"due":null}`, string(encoded))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"due":null}`), &decoded))
	require.True(t, decoded.Due.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`{"due":""}`), &decoded))
	require.True(t, decoded.Due.IsZero())
}
