package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
)

// Action names what a key press does in a scope.
type Action string

const (
	scopeGlobal   = "global"
	scopeLock     = "lock"
	scopeDesktop  = "desktop"
	scopeModal    = "modal"
	scopeLauncher = "launcher"
)

const (
	actionQuit     Action = "quit"
	actionUnlock   Action = "unlock"
	actionRelock   Action = "relock"
	actionUp       Action = "up"
	actionDown     Action = "down"
	actionLeft     Action = "left"
	actionRight    Action = "right"
	actionActivate Action = "activate"
	actionClose    Action = "close"
	actionLauncher Action = "launcher"
	actionOpenLink Action = "open_link"
)

// Binding ties keys to an action within one scope.
type Binding struct {
	Scope  string
	Action Action
	Keys   []string
	Help   string
}

var defaultBindings = []Binding{
	{scopeGlobal, actionQuit, []string{"ctrl+c"}, "sair"},
	{scopeLock, actionUnlock, []string{"enter"}, "desbloquear"},
	{scopeLock, actionQuit, []string{"q"}, "sair"},
	{scopeDesktop, actionLeft, []string{"h", "left"}, "←"},
	{scopeDesktop, actionRight, []string{"l", "right"}, "→"},
	{scopeDesktop, actionUp, []string{"k", "up"}, "↑"},
	{scopeDesktop, actionDown, []string{"j", "down"}, "↓"},
	{scopeDesktop, actionActivate, []string{"enter", "space"}, "abrir"},
	{scopeDesktop, actionLauncher, []string{"/"}, "buscar"},
	{scopeDesktop, actionRelock, []string{"ctrl+l", "L"}, "bloquear"},
	{scopeDesktop, actionQuit, []string{"q"}, "sair"},
	{scopeModal, actionClose, []string{"esc", "q"}, "fechar"},
	{scopeModal, actionOpenLink, []string{"enter", "o"}, "visitar"},
	{scopeModal, actionRelock, []string{"ctrl+l"}, "bloquear"},
	{scopeLauncher, actionActivate, []string{"enter"}, "abrir"},
	{scopeLauncher, actionUp, []string{"up", "ctrl+p"}, "anterior"},
	{scopeLauncher, actionDown, []string{"down", "ctrl+n"}, "próximo"},
	{scopeLauncher, actionClose, []string{"esc"}, "cancelar"},
	{scopeLauncher, actionQuit, []string{"ctrl+c"}, "sair"},
}

// KeyRegistry resolves key names to bindings per scope. Scopes that take
// text input do not fall back to the global scope.
type KeyRegistry struct {
	ordered    map[string][]*Binding
	byKey      map[string]map[string]*Binding
	textScopes map[string]bool
}

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		ordered:    make(map[string][]*Binding),
		byKey:      make(map[string]map[string]*Binding),
		textScopes: map[string]bool{scopeLauncher: true},
	}
	for _, b := range defaultBindings {
		r.Register(b)
	}
	return r
}

// Register adds b unless one of its keys is already taken in the scope.
func (r *KeyRegistry) Register(b Binding) {
	keys := make([]string, 0, len(b.Keys))
	for _, k := range b.Keys {
		if n := normalizeKeyName(k); n != "" {
			keys = append(keys, n)
		}
	}
	if len(keys) == 0 {
		return
	}
	idx := r.byKey[b.Scope]
	if idx == nil {
		idx = make(map[string]*Binding)
		r.byKey[b.Scope] = idx
	}
	for _, k := range keys {
		if _, taken := idx[k]; taken {
			return
		}
	}
	b.Keys = keys
	stored := &b
	r.ordered[b.Scope] = append(r.ordered[b.Scope], stored)
	for _, k := range keys {
		idx[k] = stored
	}
}

func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	keyName = normalizeKeyName(keyName)
	if keyName == "" {
		return nil
	}
	if b := r.byKey[scope][keyName]; b != nil {
		return b
	}
	if scope == scopeGlobal || r.textScopes[scope] {
		return nil
	}
	return r.byKey[scopeGlobal][keyName]
}

// IsAction reports whether keyName is bound to action in scope.
func (r *KeyRegistry) IsAction(keyName, scope string, action Action) bool {
	b := r.Lookup(keyName, scope)
	return b != nil && b.Action == action
}

// HelpBindings lists the scope's bindings in registration order, labelled
// with their shortest key.
func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	out := make([]key.Binding, 0, len(r.ordered[scope]))
	for _, b := range r.ordered[scope] {
		short := b.Keys[0]
		for _, k := range b.Keys[1:] {
			if len(k) < len(short) {
				short = k
			}
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(short, b.Help)))
	}
	return out
}

// normalizeKeyName maps the spellings bubbletea and config files use onto
// one form. A lone uppercase letter keeps its case.
func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	k = strings.TrimSpace(k)
	if utf8.RuneCountInString(k) == 1 {
		return k
	}
	k = strings.ToLower(strings.ReplaceAll(k, " ", ""))
	switch k {
	case "return":
		return "enter"
	case "spacebar":
		return "space"
	}
	return strings.Replace(k, "control+", "ctrl+", 1)
}
