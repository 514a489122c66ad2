package tools

// ReadOnlyAnnotations marks a tool that only reads the dataset.
func ReadOnlyAnnotations() map[string]bool {
	return map[string]bool{
		"readOnlyHint":    true,
		"destructiveHint": false,
		"idempotentHint":  true,
		"openWorldHint":   false,
	}
}
