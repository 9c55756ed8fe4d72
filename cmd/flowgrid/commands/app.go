package commands

import (
	"fmt"

	"github.com/mfkiwl/flowgrid/internal/component"
	"github.com/mfkiwl/flowgrid/internal/config"
	"github.com/mfkiwl/flowgrid/internal/gridpath"
	"github.com/mfkiwl/flowgrid/internal/project"
	"github.com/mfkiwl/flowgrid/internal/reducer"
)

// app bundles the wired-up core: the component tree, the reducer that
// owns the store, and the project handler routing Project::* actions to
// disk.
type app struct {
	tree    *component.Tree
	reducer *reducer.Reducer
	handler *project.Handler
}

// newApp builds the default application tree and wires a reducer and
// project handler over it. Every CLI command starts from this, the same
// way the GUI process would at startup.
func newApp() (*app, error) {
	tree, err := defaultTree()
	if err != nil {
		return nil, fmt.Errorf("build component tree: %w", err)
	}
	cfg := config.New()
	r := reducer.New(tree, cfg)
	h := project.NewHandler(cfg, defaultProject)
	r.SetProjectHandler(h)
	return &app{tree: tree, reducer: r, handler: h}, nil
}

// defaultTree is the static application tree (spec §3: built once at
// startup, never reshaped by actions): the audio device and node graph,
// the Faust editor, and the per-window visibility fields.
func defaultTree() (*component.Tree, error) {
	t := component.New()

	audio, err := t.AddGroup(component.RootID, "audio", "Audio", "Audio device and graph")
	if err != nil {
		return nil, err
	}
	device, err := t.AddGroup(audio, "device", "Device", "Audio device settings")
	if err != nil {
		return nil, err
	}
	fields := []struct {
		segment, name, help string
		kind                gridpath.Kind
	}{
		{"on", "On", "Whether the audio device is running", gridpath.KindBool},
		{"sample_rate", "Sample rate", "Device sample rate in Hz", gridpath.KindU32},
		{"in_device", "In device", "Input device name", gridpath.KindString},
		{"out_device", "Out device", "Output device name", gridpath.KindString},
		{"volume", "Volume", "Output gain", gridpath.KindF32},
		{"muted", "Muted", "Whether output is muted", gridpath.KindBool},
	}
	for _, f := range fields {
		if _, err := t.AddField(device, f.segment, f.name, f.help, f.kind); err != nil {
			return nil, err
		}
	}

	graph, err := t.AddGroup(audio, "graph", "Graph", "Audio node graph")
	if err != nil {
		return nil, err
	}
	if _, err := t.AddContainer(graph, "connections", "Connections", "Directed edges between audio nodes", component.ContainerAdjacencyList); err != nil {
		return nil, err
	}
	if _, err := t.AddContainer(graph, "disabled_nodes", "Disabled nodes", "Nodes excluded from reachability", component.ContainerSetU32); err != nil {
		return nil, err
	}

	faust, err := t.AddGroup(component.RootID, "faust", "Faust", "Faust DSP editor")
	if err != nil {
		return nil, err
	}
	if _, err := t.AddContainer(faust, "editor", "Editor", "Faust source editor", component.ContainerTextBuffer); err != nil {
		return nil, err
	}
	if _, err := t.AddField(faust, "error", "Error", "Last Faust compile error", gridpath.KindString); err != nil {
		return nil, err
	}

	windows, err := t.AddGroup(component.RootID, "windows", "Windows", "Window visibility")
	if err != nil {
		return nil, err
	}
	for _, w := range []string{"audio", "faust_editor", "project_settings", "debug"} {
		if _, err := t.AddField(windows, w, w, "", gridpath.KindBool); err != nil {
			return nil, err
		}
	}

	settings, err := t.AddGroup(component.RootID, "settings", "Settings", "Application settings")
	if err != nil {
		return nil, err
	}
	if _, err := t.AddField(settings, "theme", "Theme", "UI color theme", gridpath.KindString); err != nil {
		return nil, err
	}
	if _, err := t.AddContainer(settings, "recent_views", "Recent views", "Recently focused window ids", component.ContainerNavigable); err != nil {
		return nil, err
	}

	return t, nil
}
