package normalize

// KnownTypos maps cell text that appeared misspelled in published ADIF
// Specification versions to the text it should have been. Lookups are exact
// and happen before comment extraction.
var KnownTypos = map[string]string{
	"Chukotka (Chukotskiy avtonomnyy okrug]": "Chukotka (Chukotskiy avtonomnyy okrug)",
	"Kaliningrad (Kaliningradskaya oblast}":  "Kaliningrad (Kaliningradskaya oblast)",
	"Hamburg {Freie und Hansestadt Hamburg)": "Hamburg (Freie und Hansestadt Hamburg)",

	"Taymyr (Taymyrskiy avtonomnyy okrug)) - for contacts made before 2008-01-01": "Taymyr (Taymyrskiy avtonomnyy okrug) - for contacts made before 2008-01-01",
}

// FixTypo returns the corrected text for a known typo, or s unchanged.
func FixTypo(s string) string {
	if fixed, ok := KnownTypos[s]; ok {
		return fixed
	}
	return s
}
