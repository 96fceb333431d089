package shared

// ClampLimit bounds a caller-supplied result limit. Values <= 0 select def;
// values above max are capped.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
