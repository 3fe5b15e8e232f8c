package analytics

// Bucket is a single labelled count in a frequency distribution.
type Bucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CountBy folds values into frequency buckets. Buckets appear in the
// order their label was first seen, so repeated runs over the same
// input produce the same chart.
func CountBy(values []string) []Bucket {
	index := make(map[string]int, len(values))
	buckets := make([]Bucket, 0, len(values))
	for _, v := range values {
		if i, ok := index[v]; ok {
			buckets[i].Count++
			continue
		}
		index[v] = len(buckets)
		buckets = append(buckets, Bucket{Name: v, Count: 1})
	}
	return buckets
}
