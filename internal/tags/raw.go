package tags

// Raw is the unnormalized result of reading one file.
type Raw struct {
	Path   string
	Format string

	Artist  Value[string]
	Title   Value[string]
	Album   Value[string]
	Genre   Value[string]
	Comment Value[string]
	// Track keeps the tag text ("7", "07/12", "A1") so the normalizer decides
	// what counts as numeric.
	Track Value[string]
	// Duration is the playing time in seconds.
	Duration Value[float64]
}
