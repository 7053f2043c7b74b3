// Package runtime manages the ephemeral measurement instance via containerd.
//
// A [Runtime] connects to a containerd daemon and starts one detached
// container from a registry-qualified image reference. The image is pulled
// and unpacked for the pinned target platform, the container is created
// with a fresh snapshot under a well-known name, and a holding task keeps
// it alive so the measurement file baked into the image can be streamed out
// through an exec process.
//
// Stop and Remove are idempotent so cleanup can be attempted on every exit
// path without tracking which state the instance reached.
//
// Example usage:
//
//	rt, err := runtime.New("/run/containerd/containerd.sock", "measurectl")
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	ctr, err := rt.Start(ctx, "acme/foo:latest", "measure-function", "linux/amd64")
//	if err != nil {
//	    return err
//	}
//	defer func() {
//	    ctr.Stop(ctx)
//	    ctr.Remove(ctx)
//	}()
//
//	data, err := ctr.ReadFile(ctx, "/measurement.txt")
//	if err != nil {
//	    return err
//	}
package runtime
