package engine

import "sort"

// Params is the JSON-representable configuration attached to a task at
// admission. Scrape-style executors require a "url" entry.
type Params map[string]any

// Task pairs a Key with the Params it should be admitted with.
type Task struct {
	Key    string
	Params Params
}

// Tasks is the input to Execute: either the admission form (a Key->Params
// mapping, expressed as an ordered slice so admission order is
// deterministic — Go maps carry no ordering guarantee, unlike the source's
// dict) or the replay form (a bare sequence of Keys whose journal entries
// must already exist).
type Tasks struct {
	admission []Task
	replay    []string
	isReplay  bool
}

// AdmitTasks builds the admission form of Tasks from an ordered list of
// Key/Params pairs. Each Key's journal entry is created or merged before
// any executor runs.
func AdmitTasks(tasks []Task) Tasks {
	return Tasks{admission: tasks}
}

// AdmitMap builds the admission form from a plain map, iterating keys in
// sorted order for determinism (callers that need a specific admission
// order should use AdmitTasks instead).
func AdmitMap(tasks map[string]Params) Tasks {
	keys := make([]string, 0, len(tasks))
	for k := range tasks {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make([]Task, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, Task{Key: k, Params: tasks[k]})
	}
	return AdmitTasks(ordered)
}

// ReplayTasks builds the replay form: each Key's journal entry must already
// exist, or it is reported as failed and skipped (design §4.4).
func ReplayTasks(keys []string) Tasks {
	return Tasks{replay: keys, isReplay: true}
}
