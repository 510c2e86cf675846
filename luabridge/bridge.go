// Package luabridge exposes a router to Lua scripts. Scripts cannot
// express Go payload types, so the bridge extracts a runtime type
// descriptor and raw payload from the script's arguments and forwards them
// to the router's shared broadcast entry point; no dispatch logic is
// duplicated on this path. Script-originated registrations are
// wildcard-typed and receive every broadcast on their channel.
package luabridge

import (
	"github.com/tidwall/gjson"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/msgbus"
	"github.com/dshills/msgbus/channel"
	"github.com/dshills/msgbus/msgtype"
)

// ModuleName is the global table the bridge installs.
const ModuleName = "msgbus"

// Install registers the msgbus module in the Lua state:
//
//	msgbus.broadcast(channel, table)
//	msgbus.broadcast_json(channel, json_string)
//	handle = msgbus.register(channel, fn [, "partial"])
//	msgbus.unregister(handle)
//
// The state must only be driven from a single goroutine; dispatch into Lua
// callbacks is synchronous, matching the router's execution model.
func Install(L *lua.LState, r *msgbus.Router) {
	b := &binding{L: L, router: r}
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"broadcast":      b.broadcast,
		"broadcast_json": b.broadcastJSON,
		"register":       b.register,
		"unregister":     b.unregister,
	})
	L.SetGlobal(ModuleName, mod)
}

type binding struct {
	L      *lua.LState
	router *msgbus.Router
}

// broadcast(channel, table): the table becomes the payload and its
// converted Go shape becomes the runtime type descriptor.
func (b *binding) broadcast(L *lua.LState) int {
	ch := channel.Channel(L.CheckString(1))
	tbl := L.CheckTable(2)

	payload := toGoValue(tbl)
	b.router.BroadcastPayload(ch, msgtype.Of(payload), payload)
	return 0
}

// broadcast_json(channel, json_string): a JSON document as payload, for
// scripts that already hold serialized messages.
func (b *binding) broadcastJSON(L *lua.LState) int {
	ch := channel.Channel(L.CheckString(1))
	doc := L.CheckString(2)

	if !gjson.Valid(doc) {
		L.ArgError(2, "invalid json")
		return 0
	}
	payload := gjson.Parse(doc).Value()
	if payload == nil {
		L.ArgError(2, "json payload must not be null")
		return 0
	}
	b.router.BroadcastPayload(ch, msgtype.Of(payload), payload)
	return 0
}

// register(channel, fn [, "partial"]) -> handle userdata.
func (b *binding) register(L *lua.LState) int {
	ch := channel.Channel(L.CheckString(1))
	fn := L.CheckFunction(2)

	match := msgbus.ExactMatch
	switch mode := L.OptString(3, "exact"); mode {
	case "exact":
	case "partial":
		match = msgbus.PartialMatch
	default:
		L.ArgError(3, "match criteria must be \"exact\" or \"partial\"")
		return 0
	}

	cb := func(ch channel.Channel, _ msgtype.Descriptor, payload any) {
		err := b.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true},
			lua.LString(ch.String()), toLuaValue(b.L, payload))
		if err != nil {
			// Script callback failures never abort a broadcast.
			b.router.Diagnostics().Warn(ch, "lua listener failed: %v", err)
		}
	}

	h := b.router.Register(ch, cb, msgbus.WithMatch(match))
	ud := L.NewUserData()
	ud.Value = h
	L.Push(ud)
	return 1
}

// unregister(handle).
func (b *binding) unregister(L *lua.LState) int {
	ud := L.CheckUserData(1)
	h, ok := ud.Value.(msgbus.Handle)
	if !ok {
		L.ArgError(1, "expected a listener handle")
		return 0
	}
	b.router.Unregister(h)
	return 0
}
