package container

import (
	"context"

	containertypes "github.com/docker/docker/api/types/container"
	imagetypes "github.com/docker/docker/api/types/image"

	"github.com/RevCBH/pgbox/internal/bootstrap"
)

// apiClient is the slice of the runtime API used for state queries. Tests
// inject a fake; production uses the Docker SDK client, which podman also
// serves through its compatibility socket.
type apiClient interface {
	ImageList(ctx context.Context, options imagetypes.ListOptions) ([]imagetypes.Summary, error)
	ContainerList(ctx context.Context, options containertypes.ListOptions) ([]containertypes.Summary, error)
}

// Images returns all images visible to the runtime
func (r *Runtime) Images(ctx context.Context) ([]bootstrap.ImageDescriptor, error) {
	images, err := r.api.ImageList(ctx, imagetypes.ListOptions{})
	if err != nil {
		return nil, bootstrap.NewRuntimeError("list images", err)
	}

	descriptors := make([]bootstrap.ImageDescriptor, 0, len(images))
	for _, img := range images {
		descriptors = append(descriptors, bootstrap.ImageDescriptor{
			ID:       img.ID,
			RepoTags: img.RepoTags,
		})
	}
	return descriptors, nil
}

// Containers returns the currently running containers. Stopped containers
// are not listed; a stopped pgbox container never blocks a fresh launch.
func (r *Runtime) Containers(ctx context.Context) ([]bootstrap.ContainerDescriptor, error) {
	containers, err := r.api.ContainerList(ctx, containertypes.ListOptions{})
	if err != nil {
		return nil, bootstrap.NewRuntimeError("list containers", err)
	}

	descriptors := make([]bootstrap.ContainerDescriptor, 0, len(containers))
	for _, c := range containers {
		descriptors = append(descriptors, bootstrap.ContainerDescriptor{
			ID:    c.ID,
			Image: c.Image,
		})
	}
	return descriptors, nil
}
