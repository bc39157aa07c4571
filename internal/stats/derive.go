package stats

import "time"

// MovingAverage smooths a series with a simple moving average of the given
// window. Each output point averages one window of consecutive input points
// and carries the window's last timestamp; fewer input points than the
// window yields a series with empty data. Series metadata is preserved.
func MovingAverage(s DataSeries, window int) DataSeries {
	if window < 1 || len(s.Data) < window {
		return s.WithData([]DataPoint{})
	}

	out := make([]DataPoint, 0, len(s.Data)-window+1)
	var sum float64
	for i, p := range s.Data {
		sum += p.Value
		if i < window-1 {
			continue
		}
		if i >= window {
			sum -= s.Data[i-window].Value
		}
		out = append(out, NewDataPoint(p.Time, sum/float64(window), s.ValueType))
	}
	return s.WithData(out)
}

// GrowthPoint is one period-over-period growth observation. Defined is false
// when the previous value was zero and the rate has no meaning; callers must
// not read Rate in that case.
type GrowthPoint struct {
	Time    time.Time
	Rate    float64
	Defined bool
}

// GrowthSeries pairs growth observations with the source series metadata.
type GrowthSeries struct {
	ID   string
	Name string
	Data []GrowthPoint
}

// GrowthRate computes the percentage change between each pair of consecutive
// points. A zero previous value produces an undefined point rather than a
// division by zero; fewer than two input points yield empty data.
func GrowthRate(s DataSeries) GrowthSeries {
	out := GrowthSeries{ID: s.ID, Name: s.Name}
	if len(s.Data) < 2 {
		out.Data = []GrowthPoint{}
		return out
	}

	out.Data = make([]GrowthPoint, 0, len(s.Data)-1)
	for i := 1; i < len(s.Data); i++ {
		current, previous := s.Data[i], s.Data[i-1]
		point := GrowthPoint{Time: current.Time}
		if previous.Value != 0 {
			point.Rate = (current.Value - previous.Value) / previous.Value * 100
			point.Defined = true
		}
		out.Data = append(out.Data, point)
	}
	return out
}
