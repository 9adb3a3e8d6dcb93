package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bjorndm/bazel/internal/adapters/diagnostics"
	"github.com/bjorndm/bazel/internal/core/domain"
)

func TestStored_RecordsInOrder(t *testing.T) {
	sink := diagnostics.NewStored()
	require.False(t, sink.HasErrors())

	warn := domain.WarningEvent(domain.Position{File: "BUILD", Line: 1}, "deprecated")
	fail := domain.ErrorEvent(domain.Position{File: "BUILD", Line: 2}, "broken")
	sink.Handle(warn)
	sink.Handle(fail)

	require.True(t, sink.HasErrors())
	require.Equal(t, []domain.Event{warn, fail}, sink.Events())
}

func TestStored_Replay(t *testing.T) {
	src := diagnostics.NewStored()
	src.Handle(domain.WarningEvent(domain.Position{}, "one"))
	src.Handle(domain.ErrorEvent(domain.Position{}, "two"))

	dst := diagnostics.NewStored()
	src.Replay(dst)
	require.Equal(t, src.Events(), dst.Events())
}

func TestStored_WarningsAreNotErrors(t *testing.T) {
	sink := diagnostics.NewStored()
	sink.Handle(domain.WarningEvent(domain.Position{}, "just a warning"))
	require.False(t, sink.HasErrors())
}
