//go:build !linux

package collect

import "github.com/P70-ops/netanalyzer/internal/report"

func fillUname(info *report.SystemInfo) {}
