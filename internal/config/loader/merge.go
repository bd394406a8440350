package loader

// DeepMerge copies src into dst and returns dst, allocating it when nil.
// Nested maps merge key by key; any other value in src replaces the one in
// dst.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, v := range src {
		sub, ok := v.(map[string]any)
		if existing, isMap := dst[key].(map[string]any); ok && isMap {
			dst[key] = DeepMerge(existing, sub)
			continue
		}
		dst[key] = v
	}
	return dst
}
