package rpc

import (
	"encoding/json"

	"github.com/dshills/sweep/internal/haystack"
	"github.com/dshills/sweep/internal/input/key"
	"github.com/dshills/sweep/internal/picker"
)

// RegisterPickerMethods binds the method table of §4.5 to p. select/bind
// events are not emitted here: the event loop drives Picker.Dispatch for
// TTY keystrokes and calls d.Emit itself when that produces an
// ActionSelect/ActionBind, so both TTY and RPC-originated selections are
// reported identically.
func RegisterPickerMethods(d *Dispatcher, p *picker.Picker) {
	d.Register("field_register", func(params json.RawMessage) (any, *Error) {
		var f WireField
		if len(params) > 0 {
			if err := json.Unmarshal(params, &f); err != nil {
				return nil, NewError(CodeInvalidParams, "field_register: "+err.Error())
			}
		}
		return p.FieldRegister(f.toField()), nil
	})

	d.Register("items_extend", func(params json.RawMessage) (any, *Error) {
		var items []WireItem
		if err := json.Unmarshal(params, &items); err != nil {
			return nil, NewError(CodeInvalidParams, "items_extend: "+err.Error())
		}
		out := make([]haystack.Item, len(items))
		for i, it := range items {
			out[i] = it.toItem()
		}
		p.ItemsExtend(out)
		return nil, nil
	})

	d.Register("items_clear", func(params json.RawMessage) (any, *Error) {
		p.ItemsClear()
		return nil, nil
	})

	d.Register("items_current", func(params json.RawMessage) (any, *Error) {
		item, ok := p.ItemsCurrent()
		if !ok {
			return nil, nil
		}
		return fromItem(item), nil
	})

	d.Register("query_set", func(params json.RawMessage) (any, *Error) {
		var q string
		if err := json.Unmarshal(params, &q); err != nil {
			return nil, NewError(CodeInvalidParams, "query_set: "+err.Error())
		}
		p.QuerySet(q)
		return nil, nil
	})

	d.Register("query_get", func(params json.RawMessage) (any, *Error) {
		return p.QueryGet(), nil
	})

	d.Register("prompt_set", func(params json.RawMessage) (any, *Error) {
		var req struct {
			Prompt string  `json:"prompt"`
			Icon   *string `json:"icon"`
		}
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, NewError(CodeInvalidParams, "prompt_set: "+err.Error())
		}
		p.PromptSet(req.Prompt, req.Icon)
		return nil, nil
	})

	d.Register("bind", func(params json.RawMessage) (any, *Error) {
		var req struct {
			Key string `json:"key"`
			Tag string `json:"tag"`
		}
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, NewError(CodeInvalidParams, "bind: "+err.Error())
		}
		seq, err := key.ParseSequence(req.Key)
		if err != nil {
			return nil, NewError(CodeInvalidParams, "bind: bad chord syntax: "+err.Error())
		}
		if err := p.Trie().Bind(seq, req.Tag); err != nil {
			return nil, NewError(CodeInvalidParams, "bind: "+err.Error())
		}
		return nil, nil
	})

	d.Register("preview_set", func(params json.RawMessage) (any, *Error) {
		var show *bool
		if len(params) > 0 && string(params) != "null" {
			var b bool
			if err := json.Unmarshal(params, &b); err != nil {
				return nil, NewError(CodeInvalidParams, "preview_set: "+err.Error())
			}
			show = &b
		}
		p.PreviewSet(show)
		return nil, nil
	})

	d.Register("terminate", func(params json.RawMessage) (any, *Error) {
		p.Terminate()
		return nil, nil
	})
}
