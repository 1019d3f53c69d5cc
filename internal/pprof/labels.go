// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package pprof

import (
	"context"
	"fmt"
	"runtime/pprof"
	"strconv"

	"github.com/ChainSafe/chainext/lib/extension"
)

// Profiler label keys set by Do.
const (
	LabelFunction = "extension_function"
	LabelCategory = "extension_category"
)

// Do calls f with its goroutine labelled with the chain extension
// function called, so the samples of a profile can be grouped by
// function with `go tool pprof -tagfocus`.
func Do(ctx context.Context, id extension.Identifier, f func(ctx context.Context)) {
	labels := pprof.Labels(
		LabelFunction, fmt.Sprintf("0x%08x", uint32(id)),
		LabelCategory, strconv.Itoa(int(id.Category())),
	)
	pprof.Do(ctx, labels, f)
}
