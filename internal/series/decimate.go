package series

import "github.com/serieslab/inspector/pkg/timeutil"

// Decimate reduces a series to roughly target points for overview
// rendering. Series below threshold are returned unchanged.
//
// Time-kind series are bucket-averaged with a period inferred from
// the true time span (timeutil.BinPeriod); number-kind series are
// subsampled by fixed stride. Decimation only ever feeds the outline
// render — the detail view and all marking coordinates stay on the
// real data.
func Decimate(s *Series, threshold, target int) *Series {
	if s.Len() < threshold || target <= 0 || s.Len() < 2 {
		return s
	}
	if s.kind == KindTime {
		return bucketAverage(s, target)
	}
	return strideSample(s, target)
}

// bucketAverage resamples a time-kind series into fixed-period
// buckets, stamping each bucket at its start and averaging the values
// that fall inside it. Empty buckets produce no point.
func bucketAverage(s *Series, target int) *Series {
	first, last := s.Bounds()
	span := timeutil.DomainToDuration(last - first)
	period := timeutil.DurationToDomain(timeutil.BinPeriod(span, s.Len(), target))

	index := make([]float64, 0, target+1)
	values := make([]float64, 0, target+1)

	bucket := 0
	sum := 0.0
	count := 0
	flush := func() {
		if count > 0 {
			index = append(index, first+float64(bucket)*period)
			values = append(values, sum/float64(count))
		}
		sum, count = 0, 0
	}
	for i := 0; i < s.Len(); i++ {
		b := int((s.index[i] - first) / period)
		if b != bucket {
			flush()
			bucket = b
		}
		sum += s.values[i]
		count++
	}
	flush()

	return &Series{kind: s.kind, index: index, values: values}
}

// strideSample takes every n-th point of a number-kind series.
func strideSample(s *Series, target int) *Series {
	stride := s.Len() / target
	if stride < 1 {
		stride = 1
	}
	index := make([]float64, 0, s.Len()/stride+1)
	values := make([]float64, 0, s.Len()/stride+1)
	for i := 0; i < s.Len(); i += stride {
		index = append(index, s.index[i])
		values = append(values, s.values[i])
	}
	return &Series{kind: s.kind, index: index, values: values}
}
