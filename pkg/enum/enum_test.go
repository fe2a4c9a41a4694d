package enum

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func direction(t *testing.T, opts ...Option) *Enum[int] {
	t.Helper()
	e, err := New(Source[int]{
		{"Up", 1},
		{"Down", 2},
		{"Left", 3},
		{"Right", 4},
	}, opts...)
	require.NoError(t, err)
	return e
}

func status(t *testing.T, opts ...Option) *Enum[any] {
	t.Helper()
	e, err := New(Source[any]{
		{"Success", 1},
		{"Error", 0},
		{"Other", "1"},
	}, opts...)
	require.NoError(t, err)
	return e
}

func TestNew_Direction(t *testing.T) {
	e := direction(t)

	assert.Equal(t, 4, e.Len())
	assert.Equal(t, []string{"Up", "Down", "Left", "Right"}, e.Keys())
	assert.Equal(t, []int{1, 2, 3, 4}, e.Values())

	key, ok := e.Key(3)
	assert.True(t, ok)
	assert.Equal(t, "Left", key)

	value, ok := e.Value("Down")
	assert.True(t, ok)
	assert.Equal(t, 2, value)
}

func TestNew_EmptySource(t *testing.T) {
	e, err := New(Source[string]{})
	require.NoError(t, err)

	assert.Equal(t, 0, e.Len())
	assert.Empty(t, e.Keys())
	assert.Empty(t, e.Values())
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		source   Source[any]
		wantErr  error
		wantKeys []string
	}{
		{
			name:     "duplicate numeric value",
			source:   Source[any]{{"Success", 1}, {"Error", 0}, {"Other", 1}},
			wantErr:  ErrDuplicateValue,
			wantKeys: []string{"Success", "Other"},
		},
		{
			name:     "duplicate string value",
			source:   Source[any]{{"A", "a"}, {"B", "a"}, {"C", "a"}},
			wantErr:  ErrDuplicateValue,
			wantKeys: []string{"A", "B", "C"},
		},
		{
			name:     "duplicate key",
			source:   Source[any]{{"A", 1}, {"A", 2}},
			wantErr:  ErrDuplicateKey,
			wantKeys: []string{"A"},
		},
		{
			name:     "nil value",
			source:   Source[any]{{"A", nil}},
			wantErr:  ErrInvalidValue,
			wantKeys: []string{"A"},
		},
		{
			name:     "bool value",
			source:   Source[any]{{"A", 1}, {"B", true}},
			wantErr:  ErrInvalidValue,
			wantKeys: []string{"B"},
		},
		{
			name:    "number and numeric string are distinct",
			source:  Source[any]{{"A", 1}, {"B", "1"}},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.source)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, len(tt.source), e.Len())
				return
			}
			require.Error(t, err)
			assert.Nil(t, e)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantKeys, verr.Keys)
		})
	}
}

func TestNew_DuplicateValueMessage(t *testing.T) {
	_, err := New(Source[int]{{"Success", 1}, {"Error", 0}, {"Other", 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enum values must be unique")
}

func TestNew_RejectsNaN(t *testing.T) {
	nan := 0.0
	nan = nan / nan
	_, err := New(Source[float64]{{"A", nan}})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew(Source[int]{{"A", 1}, {"B", 1}})
	})
	assert.NotPanics(t, func() {
		MustNew(Source[int]{{"A", 1}, {"B", 2}})
	})
}

func TestRoundTrip(t *testing.T) {
	t.Run("int values", func(t *testing.T) {
		e := direction(t)
		for _, k := range e.Keys() {
			v, ok := e.Value(k)
			require.True(t, ok)
			got, ok := e.Key(v)
			require.True(t, ok)
			assert.Equal(t, k, got)
		}
	})

	t.Run("mixed values", func(t *testing.T) {
		e := status(t)
		for _, k := range e.Keys() {
			v, ok := e.Value(k)
			require.True(t, ok)
			got, ok := e.Key(v)
			require.True(t, ok)
			assert.Equal(t, k, got)
		}
	})
}

func TestKeysValuesAligned(t *testing.T) {
	e := status(t)
	keys, values := e.Keys(), e.Values()
	require.Len(t, values, len(keys))
	for i, k := range keys {
		v, ok := e.Value(k)
		require.True(t, ok)
		assert.Equal(t, values[i], v)
	}
}

func TestLookupMisses(t *testing.T) {
	e := direction(t)

	v, ok := e.Value("Diagonal")
	assert.False(t, ok)
	assert.Zero(t, v)

	k, ok := e.Key(42)
	assert.False(t, ok)
	assert.Empty(t, k)

	assert.False(t, e.Has("Diagonal"))
	assert.True(t, e.Has("Up"))
	assert.False(t, e.Contains(42))
	assert.True(t, e.Contains(4))
}

func TestKey_StrictIdentity(t *testing.T) {
	e := status(t)

	k, ok := e.Key(1)
	require.True(t, ok)
	assert.Equal(t, "Success", k)

	k, ok = e.Key("1")
	require.True(t, ok)
	assert.Equal(t, "Other", k)

	// Numbers match by magnitude whatever their Go type.
	k, ok = e.Key(int64(1))
	require.True(t, ok)
	assert.Equal(t, "Success", k)
	k, ok = e.Key(1.0)
	require.True(t, ok)
	assert.Equal(t, "Success", k)

	assert.Equal(t, []any{1, 0, "1"}, e.Values())
	assert.Equal(t, []string{"Success", "Error", "Other"}, e.Keys())
}

func TestEntries_FreshEnumIsAllOwn(t *testing.T) {
	for _, ent := range direction(t).Entries() {
		assert.False(t, ent.Inherited, ent.Key)
	}
}

func TestGettersReturnCopies(t *testing.T) {
	e := direction(t)

	keys := e.Keys()
	keys[0] = "Changed"
	values := e.Values()
	values[0] = 99

	assert.Equal(t, "Up", e.Keys()[0])
	assert.Equal(t, 1, e.Values()[0])
}

func TestMarshalJSON_OnlySourceKeys(t *testing.T) {
	e := status(t, WithInverted(true))

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Equal(t, `{"Success":1,"Error":0,"Other":"1"}`, string(data))
}

func TestString(t *testing.T) {
	e := status(t)
	assert.Equal(t, `Enum{Success: 1, Error: 0, Other: "1"}`, e.String())
}

func TestNew_NumericallyEqualValues(t *testing.T) {
	tests := []struct {
		name   string
		source Source[any]
	}{
		{"int and float", Source[any]{{"A", int64(1)}, {"B", 1.0}}},
		{"int and int64", Source[any]{{"A", 1}, {"B", int64(1)}}},
		{"negative zero", Source[any]{{"A", 0}, {"B", math.Copysign(0, -1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.source, WithInverted(true))
			require.ErrorIs(t, err, ErrDuplicateValue)
			assert.Nil(t, e)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, []string{"A", "B"}, verr.Keys)
		})
	}
}

func TestKey_InvalidValueIsMiss(t *testing.T) {
	e := status(t)

	assert.NotPanics(t, func() {
		_, ok := e.Key([]int{1})
		assert.False(t, ok)
		assert.False(t, e.Contains(map[string]int{"a": 1}))
		assert.False(t, e.Contains(nil))
		assert.False(t, e.Contains(math.NaN()))
	})
}
