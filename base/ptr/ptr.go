package ptr

// String return a pointer to the input value
func String(value string) *string {
	return &value
}

// Int64 return a pointer to the input value
func Int64(value int64) *int64 {
	return &value
}

// Float64 return a pointer to the input value
func Float64(value float64) *float64 {
	return &value
}

// Bool return a pointer to the input value
func Bool(value bool) *bool {
	return &value
}

// Float64Or dereferences p, falling back to def for nil
func Float64Or(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// StringOr dereferences p, falling back to def for nil
func StringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
