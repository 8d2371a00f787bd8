package container

import (
	"log/slog"

	"github.com/farcloser/haplo/internal/types"
)

// Probe decodes just the container header of the asset at path.
func (reg *Registry) Probe(path string) (types.AudioSpec, error) {
	slog.Debug("container.Probe", "file path", path)

	stream, err := reg.Open(path)
	if err != nil {
		return types.AudioSpec{}, err
	}

	spec := stream.Spec()

	_ = stream.Close()

	return spec, nil
}
