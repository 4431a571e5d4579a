package spec

// row builds a request-scope row; idx doubles as the row index.
func row(idx, level int, label, secondary, length, typ string) Row {
	return Row{
		Level:            level,
		RawLabel:         label,
		SecondaryText:    secondary,
		LengthText:       length,
		SemanticTypeText: typ,
		Provenance:       Provenance{Section: "request", Row: idx},
	}
}

func inSection(section string, r Row) Row {
	r.Provenance.Section = section
	return r
}

func names(nodes []*FieldDescriptor) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.NormalizedName)
	}

	return out
}
