package tags

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	t.Run("text is unmodified", func(t *testing.T) {
		v, err := Coerce(Title, "  Megalovania ")
		require.NoError(t, err)
		assert.Equal(t, ScalarText, v.Shape())
		assert.Equal(t, "  Megalovania ", v.AsText())
	})

	t.Run("integers", func(t *testing.T) {
		v, err := Coerce(Year, "2023")
		require.NoError(t, err)
		assert.True(t, v.Equal(Int(2023)))

		v, err = Coerce(Track, " 7 ")
		require.NoError(t, err)
		assert.Equal(t, 7, v.AsInt())

		v, err = Coerce(BeatsPerMinute, "-12")
		require.NoError(t, err)
		assert.Equal(t, -12, v.AsInt())
	})

	t.Run("non-numeric integers fail", func(t *testing.T) {
		for _, raw := range []string{"abc", "", "7/12", "12.5"} {
			_, err := Coerce(Year, raw)
			require.Error(t, err, raw)
			assert.ErrorIs(t, err, ErrNotAnInteger)

			var ce *CoercionError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, Year, ce.Tag)
			assert.Equal(t, raw, ce.Raw)
		}
	})

	t.Run("lists split on commas", func(t *testing.T) {
		v, err := Coerce(AlbumArtists, "Sans, Frisk")
		require.NoError(t, err)
		assert.Equal(t, ListText, v.Shape())
		assert.Equal(t, []string{"Sans", "Frisk"}, v.AsList())
	})

	t.Run("a single list item stays a list", func(t *testing.T) {
		v, err := Coerce(AlbumArtists, "Sans")
		require.NoError(t, err)
		assert.Equal(t, ListText, v.Shape())
		assert.Equal(t, []string{"Sans"}, v.AsList())
	})

	t.Run("empty list items are dropped", func(t *testing.T) {
		v, err := Coerce(Genres, " Rock ,, ,Pop,")
		require.NoError(t, err)
		assert.Equal(t, []string{"Rock", "Pop"}, v.AsList())

		v, err = Coerce(Genres, "")
		require.NoError(t, err)
		assert.Equal(t, ListText, v.Shape())
		assert.Empty(t, v.AsList())
	})

	t.Run("binary tags are rejected", func(t *testing.T) {
		_, err := Coerce(Pictures, "cover.jpg")
		assert.ErrorIs(t, err, ErrBinaryValue)
	})
}

func TestCoerceDates(t *testing.T) {
	t.Run("partial ISO dates keep their precision", func(t *testing.T) {
		tests := []struct {
			raw       string
			precision Precision
			rendered  string
		}{
			{"2023", PrecisionYear, "2023"},
			{"2023-05", PrecisionMonth, "2023-05"},
			{"2023-05-17", PrecisionDay, "2023-05-17"},
			{"2023-05-17T20:15:00", PrecisionTime, "2023-05-17T20:15:00"},
		}
		for _, tt := range tests {
			v, err := Coerce(RecordingDate, tt.raw)
			require.NoError(t, err, tt.raw)
			assert.Equal(t, tt.precision, v.AsDate().Precision, tt.raw)
			assert.Equal(t, tt.rendered, v.String(), tt.raw)
		}
	})

	t.Run("ambiguous dates follow the locale", func(t *testing.T) {
		us := NewCoercer(Locale{DateOrder: MonthFirst})
		v, err := us.Coerce(ReleaseDate, "03/04/2023")
		require.NoError(t, err)
		assert.Equal(t, time.March, v.AsDate().Time.Month())
		assert.Equal(t, 4, v.AsDate().Time.Day())

		eu := NewCoercer(Locale{DateOrder: DayFirst})
		v, err = eu.Coerce(ReleaseDate, "03/04/2023")
		require.NoError(t, err)
		assert.Equal(t, time.April, v.AsDate().Time.Month())
		assert.Equal(t, 3, v.AsDate().Time.Day())
	})

	t.Run("written-out dates", func(t *testing.T) {
		v, err := Coerce(OriginalReleaseDate, "September 15, 2015")
		require.NoError(t, err)
		assert.Equal(t, "2015-09-15", v.String())
	})

	t.Run("garbage fails", func(t *testing.T) {
		for _, raw := range []string{"", "someday", "not a date"} {
			_, err := Coerce(RecordingDate, raw)
			assert.ErrorIs(t, err, ErrNotADate, raw)
		}
	})

	t.Run("ParseDateOrder", func(t *testing.T) {
		o, err := ParseDateOrder("dmy")
		require.NoError(t, err)
		assert.Equal(t, DayFirst, o)

		o, err = ParseDateOrder("")
		require.NoError(t, err)
		assert.Equal(t, MonthFirst, o)

		_, err = ParseDateOrder("ymd")
		assert.Error(t, err)
	})
}

func TestCoerceDurations(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"03:25", 3*time.Minute + 25*time.Second},
		{"3:25", 3*time.Minute + 25*time.Second},
		{"1:02:03", time.Hour + 2*time.Minute + 3*time.Second},
		{"75:00", 75 * time.Minute},
		{"00:01.250", time.Second + 250*time.Millisecond},
		{"3m25s", 3*time.Minute + 25*time.Second},
		{"205", 205 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := Coerce(Length, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.AsDuration())
		})
	}

	t.Run("invalid durations fail", func(t *testing.T) {
		for _, raw := range []string{"", "abc", "1:2:3:4", "01:75", "1:60:00", "-5", "-3m", "NaN", "Inf", "+Inf", "00:NaN", "00:Inf", "1e300", "9999999999999:00"} {
			_, err := Coerce(Length, raw)
			assert.ErrorIs(t, err, ErrNotADuration, raw)
		}
	})

	t.Run("rendered durations coerce back", func(t *testing.T) {
		for _, d := range []time.Duration{0, 59 * time.Second, 3*time.Minute + 25*time.Second, 2*time.Hour + 5*time.Second + 40*time.Millisecond} {
			v, err := Coerce(Length, FormatDuration(d))
			require.NoError(t, err)
			assert.Equal(t, d, v.AsDuration())
		}
	})
}

func TestCoerceList(t *testing.T) {
	t.Run("several items into a list tag", func(t *testing.T) {
		v, err := Coercer{}.CoerceList(Genres, []string{"Rock", " Pop ", ""})
		require.NoError(t, err)
		assert.Equal(t, []string{"Rock", "Pop"}, v.AsList())
	})

	t.Run("one item coerces like a raw string", func(t *testing.T) {
		v, err := Coercer{}.CoerceList(Year, []string{"1999"})
		require.NoError(t, err)
		assert.Equal(t, 1999, v.AsInt())
	})

	t.Run("several items into a text tag are joined", func(t *testing.T) {
		v, err := Coercer{}.CoerceList(Title, []string{"Hello", "World"})
		require.NoError(t, err)
		assert.Equal(t, "Hello, World", v.AsText())
	})

	t.Run("several items into an integer tag fail", func(t *testing.T) {
		_, err := Coercer{}.CoerceList(Year, []string{"1999", "2000"})
		assert.ErrorIs(t, err, ErrNotAnInteger)
	})
}

func TestValue(t *testing.T) {
	t.Run("accessors return zero values for other shapes", func(t *testing.T) {
		v := Int(5)
		assert.Equal(t, "", v.AsText())
		assert.Nil(t, v.AsList())
		assert.Equal(t, time.Duration(0), v.AsDuration())
	})

	t.Run("lists are copied", func(t *testing.T) {
		items := []string{"a", "b"}
		v := List(items...)
		items[0] = "changed"
		assert.Equal(t, []string{"a", "b"}, v.AsList())

		out := v.AsList()
		out[1] = "changed"
		assert.Equal(t, []string{"a", "b"}, v.AsList())
	})

	t.Run("Equal compares shape and payload", func(t *testing.T) {
		assert.True(t, List("a").Equal(List("a")))
		assert.False(t, List("a").Equal(Text("a")))
		assert.False(t, Int(1).Equal(Int(2)))
		assert.True(t, Blobs(Blob{MIMEType: "image/png", Data: []byte{1}}).Equal(Blobs(Blob{MIMEType: "image/png", Data: []byte{1}})))
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "Sans, Frisk", List("Sans", "Frisk").String())
		assert.Equal(t, "7", Int(7).String())
		assert.Equal(t, "03:25", Duration(205*time.Second).String())
		assert.Equal(t, "2 attachments", Blobs(Blob{}, Blob{}).String())
	})
}
