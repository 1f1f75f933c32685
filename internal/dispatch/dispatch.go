// Package dispatch runs named backend operations on behalf of the UI.
// Each action acquires a per-action guard before it touches the
// network, so a double keypress never produces overlapping requests,
// and releases the guard on every exit path. Actions that invalidate
// server-side data re-fetch the affected data themselves and return it
// in the Outcome, which keeps refreshes ordered after the mutation
// they follow.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ragdeck/ragdeck/internal/confmap"
	"github.com/ragdeck/ragdeck/internal/notify"
	"github.com/ragdeck/ragdeck/internal/scribe"
)

// Action identifies a remote operation.
type Action string

const (
	ActionLoadConfig Action = "config-load"
	ActionSaveConfig Action = "config-save"
	ActionOptimize   Action = "config-optimize"
	ActionListFiles  Action = "files-list"
	ActionUpload     Action = "files-upload"
	ActionDelete     Action = "files-delete"
	ActionRebuild    Action = "files-rebuild"
	ActionRebuildAll Action = "files-rebuild-all"
	ActionStart      Action = "service-start"
	ActionStop       Action = "service-stop"
	ActionShutdown   Action = "service-shutdown"
)

// ConfirmPrompt returns the confirmation question for an action and
// whether confirmation is required at all. target names the affected
// file for per-file actions.
func ConfirmPrompt(a Action, target string) (string, bool) {
	switch a {
	case ActionDelete:
		return fmt.Sprintf("Delete %q from the document store?", target), true
	case ActionUpload:
		// Only overwriting uploads are routed through confirmation.
		return fmt.Sprintf("Overwrite %q if it already exists?", target), true
	case ActionRebuild:
		return fmt.Sprintf("Rebuild the index for %q?", target), true
	case ActionRebuildAll:
		return "Rebuild the index for every document?", true
	case ActionStart:
		return "Start the scribe service?", true
	case ActionStop:
		return "Stop the scribe service?", true
	case ActionShutdown:
		return "Shut down the scribe backend?", true
	}
	return "", false
}

// Outcome carries the result of an action back to the UI together
// with any data the action re-fetched.
type Outcome struct {
	Action  Action
	Level   notify.Level
	Message string

	// Config is the fresh configuration for actions that load or
	// re-fetch it.
	Config confmap.Object

	// Files is the fresh listing for actions that re-list the corpus.
	// FilesValid distinguishes an empty listing from no listing.
	Files      []scribe.FileEntry
	FilesValid bool

	// Running is the freshly polled service state, when the action
	// re-polled it.
	Running *bool

	// ShowOps asks the UI to switch to the operations view.
	ShowOps bool

	// RefreshErr describes a follow-up fetch that failed after the
	// action itself succeeded.
	RefreshErr string

	// Skipped is set when the action's guard was already held and
	// nothing was sent.
	Skipped bool
}

// Dispatcher serialises actions against the control API.
type Dispatcher struct {
	api scribe.API

	mu      sync.Mutex
	pending map[Action]bool
}

// New returns a Dispatcher backed by the given client.
func New(api scribe.API) *Dispatcher {
	return &Dispatcher{api: api, pending: make(map[Action]bool)}
}

// Pending reports whether the action's guard is currently held.
func (d *Dispatcher) Pending(a Action) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending[a]
}

func (d *Dispatcher) acquire(a Action) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending[a] {
		return false
	}
	d.pending[a] = true
	return true
}

func (d *Dispatcher) release(a Action) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.pending, a)
}

func skipped(a Action) Outcome {
	return Outcome{Action: a, Skipped: true}
}

// failure builds an error outcome, preferring the backend's own
// message when the error carries one.
func failure(a Action, err error, generic string) Outcome {
	var apiErr *scribe.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return Outcome{Action: a, Level: notify.Error, Message: apiErr.Message}
	}
	return Outcome{Action: a, Level: notify.Error, Message: fmt.Sprintf("%s: %v", generic, err)}
}

// LoadConfig fetches the current configuration.
func (d *Dispatcher) LoadConfig(ctx context.Context) Outcome {
	if !d.acquire(ActionLoadConfig) {
		return skipped(ActionLoadConfig)
	}
	defer d.release(ActionLoadConfig)

	cfg, err := d.api.FetchConfig(ctx)
	if err != nil {
		return failure(ActionLoadConfig, err, "failed to load configuration")
	}
	return Outcome{
		Action:  ActionLoadConfig,
		Level:   notify.Info,
		Message: "configuration loaded",
		Config:  cfg,
	}
}

// SaveConfig writes the edited configuration back. The saved object is
// already the source of truth on success, so nothing is re-fetched.
func (d *Dispatcher) SaveConfig(ctx context.Context, cfg confmap.Object) Outcome {
	if !d.acquire(ActionSaveConfig) {
		return skipped(ActionSaveConfig)
	}
	defer d.release(ActionSaveConfig)

	if err := d.api.SaveConfig(ctx, cfg); err != nil {
		return failure(ActionSaveConfig, err, "failed to save configuration")
	}
	return Outcome{
		Action:  ActionSaveConfig,
		Level:   notify.Success,
		Message: "configuration saved",
	}
}

// Optimize asks the backend to tune the configuration for the local
// hardware, then re-fetches it so the form shows the tuned values.
func (d *Dispatcher) Optimize(ctx context.Context) Outcome {
	if !d.acquire(ActionOptimize) {
		return skipped(ActionOptimize)
	}
	defer d.release(ActionOptimize)

	if err := d.api.OptimizeConfig(ctx); err != nil {
		return failure(ActionOptimize, err, "failed to optimize configuration")
	}
	out := Outcome{
		Action:  ActionOptimize,
		Level:   notify.Success,
		Message: "configuration optimized for this machine",
	}
	cfg, err := d.api.FetchConfig(ctx)
	if err != nil {
		out.RefreshErr = fmt.Sprintf("failed to reload configuration: %v", err)
		return out
	}
	out.Config = cfg
	return out
}

// ListFiles fetches the document listing.
func (d *Dispatcher) ListFiles(ctx context.Context) Outcome {
	if !d.acquire(ActionListFiles) {
		return skipped(ActionListFiles)
	}
	defer d.release(ActionListFiles)

	files, err := d.api.ListFiles(ctx)
	if err != nil {
		return failure(ActionListFiles, err, "failed to list documents")
	}
	return Outcome{
		Action:     ActionListFiles,
		Level:      notify.Info,
		Message:    fmt.Sprintf("%d document(s)", len(files)),
		Files:      files,
		FilesValid: true,
	}
}

// Delete removes a document and re-lists the corpus.
func (d *Dispatcher) Delete(ctx context.Context, name string) Outcome {
	if !d.acquire(ActionDelete) {
		return skipped(ActionDelete)
	}
	defer d.release(ActionDelete)

	if err := d.api.DeleteFile(ctx, name); err != nil {
		return failure(ActionDelete, err, "failed to delete document")
	}
	out := Outcome{
		Action:  ActionDelete,
		Level:   notify.Success,
		Message: fmt.Sprintf("deleted %q", name),
	}
	d.relist(ctx, &out)
	return out
}

// RebuildFile re-indexes a single document and re-lists the corpus.
func (d *Dispatcher) RebuildFile(ctx context.Context, name string) Outcome {
	if !d.acquire(ActionRebuild) {
		return skipped(ActionRebuild)
	}
	defer d.release(ActionRebuild)

	if err := d.api.RebuildFile(ctx, name); err != nil {
		return failure(ActionRebuild, err, "failed to rebuild document")
	}
	out := Outcome{
		Action:  ActionRebuild,
		Level:   notify.Success,
		Message: fmt.Sprintf("rebuilt %q", name),
	}
	d.relist(ctx, &out)
	return out
}

// RebuildAll re-indexes every document and re-lists the corpus.
func (d *Dispatcher) RebuildAll(ctx context.Context) Outcome {
	if !d.acquire(ActionRebuildAll) {
		return skipped(ActionRebuildAll)
	}
	defer d.release(ActionRebuildAll)

	if err := d.api.RebuildAll(ctx); err != nil {
		return failure(ActionRebuildAll, err, "failed to rebuild documents")
	}
	out := Outcome{
		Action:  ActionRebuildAll,
		Level:   notify.Success,
		Message: "rebuilt all documents",
	}
	d.relist(ctx, &out)
	return out
}

// Upload sends documents to the backend and re-lists the corpus. A
// partial result downgrades the outcome to a warning and appends the
// per-file errors to the message.
func (d *Dispatcher) Upload(ctx context.Context, files []scribe.UploadFile, overwrite bool) Outcome {
	if !d.acquire(ActionUpload) {
		return skipped(ActionUpload)
	}
	defer d.release(ActionUpload)

	res, err := d.api.Upload(ctx, files, overwrite)
	if err != nil {
		return failure(ActionUpload, err, "upload failed")
	}
	out := Outcome{Action: ActionUpload, Level: notify.Success, Message: res.Message}
	if out.Message == "" {
		out.Message = fmt.Sprintf("uploaded %d file(s)", len(files))
	}
	if res.Status == scribe.StatusPartial {
		out.Level = notify.Warning
		for _, ue := range res.Errors {
			out.Message += fmt.Sprintf("; %s: %s", ue.Filename, ue.Error)
		}
	}
	d.relist(ctx, &out)
	return out
}

// Start launches the chat service and asks the UI to show the
// operations view, where the startup logs land.
func (d *Dispatcher) Start(ctx context.Context) Outcome {
	if !d.acquire(ActionStart) {
		return skipped(ActionStart)
	}
	defer d.release(ActionStart)

	if err := d.api.StartService(ctx); err != nil {
		return failure(ActionStart, err, "failed to start service")
	}
	out := Outcome{
		Action:  ActionStart,
		Level:   notify.Success,
		Message: "service starting",
		ShowOps: true,
	}
	d.repoll(ctx, &out)
	return out
}

// Stop stops the chat service.
func (d *Dispatcher) Stop(ctx context.Context) Outcome {
	if !d.acquire(ActionStop) {
		return skipped(ActionStop)
	}
	defer d.release(ActionStop)

	if err := d.api.StopService(ctx); err != nil {
		return failure(ActionStop, err, "failed to stop service")
	}
	out := Outcome{
		Action:  ActionStop,
		Level:   notify.Success,
		Message: "service stopped",
	}
	d.repoll(ctx, &out)
	return out
}

// Shutdown terminates the whole backend.
func (d *Dispatcher) Shutdown(ctx context.Context) Outcome {
	if !d.acquire(ActionShutdown) {
		return skipped(ActionShutdown)
	}
	defer d.release(ActionShutdown)

	if err := d.api.Shutdown(ctx); err != nil {
		return failure(ActionShutdown, err, "failed to shut down backend")
	}
	out := Outcome{
		Action:  ActionShutdown,
		Level:   notify.Success,
		Message: "backend shutting down",
	}
	d.repoll(ctx, &out)
	return out
}

// relist re-fetches the document listing after a mutation. The fresh
// listing travels with the outcome so it cannot be overtaken by a
// stale one.
func (d *Dispatcher) relist(ctx context.Context, out *Outcome) {
	files, err := d.api.ListFiles(ctx)
	if err != nil {
		out.RefreshErr = fmt.Sprintf("failed to refresh document list: %v", err)
		return
	}
	out.Files = files
	out.FilesValid = true
}

// repoll re-fetches the service status after a lifecycle change.
func (d *Dispatcher) repoll(ctx context.Context, out *Outcome) {
	status, err := d.api.FetchStatus(ctx)
	if err != nil {
		out.RefreshErr = fmt.Sprintf("failed to refresh service status: %v", err)
		return
	}
	running := status.Running
	out.Running = &running
}
