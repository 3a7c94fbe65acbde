package web

import (
	"html/template"

	"github.com/dustin/go-humanize"
	"github.com/getzep/sprig/v3"
)

func humanizeBytes(n int64) string {
	if n <= 0 {
		return "unlimited"
	}
	return humanize.IBytes(uint64(n))
}

func templateFuncs() template.FuncMap {
	funcs := sprig.FuncMap()
	funcs["HumanizeBytes"] = humanizeBytes
	return funcs
}
