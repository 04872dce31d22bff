// SPDX-License-Identifier: MIT
package value_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ncube/value"
)

func TestPromoteLong(t *testing.T) {
	v, err := value.Promote(value.TypeLong, "42")
	require.NoError(t, err)
	require.Equal(t, value.KindLong, v.Kind())
	require.Equal(t, int64(42), v.Long())

	v2, err := value.Promote(value.TypeLong, 7)
	require.NoError(t, err)
	require.Equal(t, int64(7), v2.Long())

	_, err = value.Promote(value.TypeLong, "not-a-number")
	require.ErrorIs(t, err, value.ErrValueConversion)

	_, err = value.Promote(value.TypeLong, nil)
	require.ErrorIs(t, err, value.ErrInvalidValue)
}

func TestPromoteIsIdempotent(t *testing.T) {
	v, err := value.Promote(value.TypeDouble, 3.5)
	require.NoError(t, err)

	again, err := value.Promote(value.TypeDouble, v)
	require.NoError(t, err)
	require.Equal(t, v, again)
}

func TestPromoteBigDecimal(t *testing.T) {
	v, err := value.Promote(value.TypeBigDecimal, "19.99")
	require.NoError(t, err)
	require.True(t, v.BigDecimal().Equal(decimal.NewFromFloat(19.99)))
}

func TestPromoteDate(t *testing.T) {
	v, err := value.Promote(value.TypeDate, "2026-01-15")
	require.NoError(t, err)
	require.Equal(t, 2026, v.Date().Year())
	require.Equal(t, time.Month(1), v.Date().Month())
}

func TestPromoteLatLonFromString(t *testing.T) {
	v, err := value.Promote(value.TypeLatLon, "40.7,-74.0")
	require.NoError(t, err)
	require.InDelta(t, 40.7, v.LatLon().Lat, 1e-9)
	require.InDelta(t, -74.0, v.LatLon().Lon, 1e-9)
}

func TestCompareRequiresMatchingKind(t *testing.T) {
	a := value.NewLong(1)
	b := value.NewString("1")
	_, err := a.Compare(b)
	require.Error(t, err)
}

func TestCompareOrdering(t *testing.T) {
	a := value.NewLong(1)
	b := value.NewLong(2)
	c, err := a.Compare(b)
	require.NoError(t, err)
	require.Less(t, c, 0)

	c, err = b.Compare(a)
	require.NoError(t, err)
	require.Greater(t, c, 0)

	c, err = a.Compare(value.NewLong(1))
	require.NoError(t, err)
	require.Equal(t, 0, c)
}

func TestDistancePoint3D(t *testing.T) {
	p1 := value.NewPoint3D(value.Point3D{X: 0, Y: 0, Z: 0})
	p2 := value.NewPoint3D(value.Point3D{X: 3, Y: 4, Z: 0})
	d, err := p1.Distance(p2)
	require.NoError(t, err)
	require.InDelta(t, 5.0, d, 1e-9)
}

func TestDistanceLatLonGreatCircle(t *testing.T) {
	nyc := value.NewLatLon(value.LatLon{Lat: 40.7128, Lon: -74.0060})
	london := value.NewLatLon(value.LatLon{Lat: 51.5074, Lon: -0.1278})
	d, err := nyc.Distance(london)
	require.NoError(t, err)
	// Great-circle distance NYC-London is roughly 5570km.
	require.InDelta(t, 5570, d, 150)
}

func TestDistanceNumericFallback(t *testing.T) {
	a := value.NewDouble(10)
	b := value.NewDouble(3)
	d, err := a.Distance(b)
	require.NoError(t, err)
	require.InDelta(t, 7, d, 1e-9)
}

func TestRangeContainsHalfOpen(t *testing.T) {
	low := value.NewLong(10)
	high := value.NewLong(20)
	r, err := value.NewRange(low, high)
	require.NoError(t, err)

	c, err := r.Contains(value.NewLong(10))
	require.NoError(t, err)
	require.Equal(t, 0, c) // inclusive lower bound

	c, err = r.Contains(value.NewLong(20))
	require.NoError(t, err)
	require.Equal(t, 1, c) // exclusive upper bound

	c, err = r.Contains(value.NewLong(5))
	require.NoError(t, err)
	require.Equal(t, -1, c)
}

func TestRangeConstructorSwapsInvertedEndpoints(t *testing.T) {
	r, err := value.NewRange(value.NewLong(20), value.NewLong(10))
	require.NoError(t, err)
	require.Equal(t, int64(10), r.Low.Long())
	require.Equal(t, int64(20), r.High.Long())
}

func TestRangeOverlaps(t *testing.T) {
	a, err := value.NewRange(value.NewLong(0), value.NewLong(10))
	require.NoError(t, err)
	b, err := value.NewRange(value.NewLong(5), value.NewLong(15))
	require.NoError(t, err)
	c, err := value.NewRange(value.NewLong(10), value.NewLong(20))
	require.NoError(t, err)

	ok, err := a.Overlaps(b)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = a.Overlaps(c)
	require.NoError(t, err)
	require.False(t, ok, "half-open ranges sharing only a boundary point must not overlap")
}

func TestRangeSetContainsDiscreteAndRangeMembers(t *testing.T) {
	r, err := value.NewRange(value.NewLong(0), value.NewLong(5))
	require.NoError(t, err)
	rs := value.NewRangeSet(value.NewLong(100), value.NewRangeValue(r))

	ok, err := rs.Contains(value.NewLong(100))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = rs.Contains(value.NewLong(3))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = rs.Contains(value.NewLong(5))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRangeSetOverlapsAcrossShapes(t *testing.T) {
	r1, _ := value.NewRange(value.NewLong(0), value.NewLong(10))
	r2, _ := value.NewRange(value.NewLong(9), value.NewLong(20))
	rs1 := value.NewRangeSet(value.NewRangeValue(r1))
	rs2 := value.NewRangeSet(value.NewRangeValue(r2))

	ok, err := rs1.Overlaps(rs2)
	require.NoError(t, err)
	require.True(t, ok)

	rs3 := value.NewRangeSet(value.NewLong(5))
	ok, err = rs1.Overlaps(rs3)
	require.NoError(t, err)
	require.True(t, ok, "discrete member inside a range member must count as overlap")
}
