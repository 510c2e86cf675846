package luabridge

import (
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/msgbus"
	"github.com/dshills/msgbus/channel"
	"github.com/dshills/msgbus/diag"
	"github.com/dshills/msgbus/msgtype"
)

func newBridgeState(t *testing.T, r *msgbus.Router) *lua.LState {
	t.Helper()
	L := lua.NewState()
	t.Cleanup(L.Close)
	Install(L, r)
	return L
}

func TestBroadcastFromLua(t *testing.T) {
	r := msgbus.New()
	L := newBridgeState(t, r)

	var got any
	r.Register("Game.Death", func(_ channel.Channel, _ msgtype.Descriptor, payload any) {
		got = payload
	})

	err := L.DoString(`msgbus.broadcast("Game.Death", {reason = "fall", depth = 3})`)
	if err != nil {
		t.Fatalf("DoString failed: %v", err)
	}

	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("payload = %T, want map[string]any", got)
	}
	if m["reason"] != "fall" {
		t.Errorf("reason = %v", m["reason"])
	}
	if m["depth"] != int64(3) {
		t.Errorf("depth = %v (%T), want int64(3)", m["depth"], m["depth"])
	}
}

func TestBroadcastFromLua_ArrayPayload(t *testing.T) {
	r := msgbus.New()
	L := newBridgeState(t, r)

	var got any
	r.Register("Game.Scores", func(_ channel.Channel, _ msgtype.Descriptor, payload any) {
		got = payload
	})

	if err := L.DoString(`msgbus.broadcast("Game.Scores", {10, 20, 30})`); err != nil {
		t.Fatalf("DoString failed: %v", err)
	}

	arr, ok := got.([]any)
	if !ok {
		t.Fatalf("payload = %T, want []any", got)
	}
	if len(arr) != 3 || arr[0] != int64(10) || arr[2] != int64(30) {
		t.Errorf("payload = %v", arr)
	}
}

func TestBroadcastJSONFromLua(t *testing.T) {
	r := msgbus.New()
	L := newBridgeState(t, r)

	var got any
	r.Register("Game.Score", func(_ channel.Channel, _ msgtype.Descriptor, payload any) {
		got = payload
	})

	if err := L.DoString(`msgbus.broadcast_json("Game.Score", '{"points": 10}')`); err != nil {
		t.Fatalf("DoString failed: %v", err)
	}

	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("payload = %T, want map[string]any", got)
	}
	if m["points"] != float64(10) {
		t.Errorf("points = %v (%T)", m["points"], m["points"])
	}
}

func TestBroadcastJSONFromLua_Invalid(t *testing.T) {
	r := msgbus.New()
	L := newBridgeState(t, r)

	if err := L.DoString(`msgbus.broadcast_json("Game.Score", '{nope')`); err == nil {
		t.Error("expected error for invalid json")
	}
	if err := L.DoString(`msgbus.broadcast_json("Game.Score", 'null')`); err == nil {
		t.Error("expected error for null payload")
	}
}

func TestLuaListenerReceivesGoBroadcast(t *testing.T) {
	r := msgbus.New()
	L := newBridgeState(t, r)

	err := L.DoString(`
		handle = msgbus.register("Game", function(ch, msg)
			got_channel = ch
			got_n = msg.n
		end, "partial")
	`)
	if err != nil {
		t.Fatalf("DoString failed: %v", err)
	}

	// Lua registrations are wildcard-typed; they accept any payload.
	msgbus.Broadcast(r, channel.Channel("Game.Death"), map[string]any{"n": 7})

	if got := L.GetGlobal("got_channel"); got.String() != "Game.Death" {
		t.Errorf("got_channel = %q, want the broadcast channel", got.String())
	}
	if got := L.GetGlobal("got_n"); lua.LVAsNumber(got) != 7 {
		t.Errorf("got_n = %v, want 7", got)
	}
}

func TestLuaRoundTrip(t *testing.T) {
	r := msgbus.New()
	L := newBridgeState(t, r)

	err := L.DoString(`
		count = 0
		handle = msgbus.register("Game.Death", function(ch, msg)
			count = count + 1
		end)
		msgbus.broadcast("Game.Death", {reason = "fall"})
	`)
	if err != nil {
		t.Fatalf("DoString failed: %v", err)
	}
	if n := lua.LVAsNumber(L.GetGlobal("count")); n != 1 {
		t.Fatalf("count = %v, want 1", n)
	}

	if err := L.DoString(`msgbus.unregister(handle)`); err != nil {
		t.Fatalf("unregister failed: %v", err)
	}
	if err := L.DoString(`msgbus.broadcast("Game.Death", {reason = "again"})`); err != nil {
		t.Fatalf("DoString failed: %v", err)
	}
	if n := lua.LVAsNumber(L.GetGlobal("count")); n != 1 {
		t.Errorf("count after unregister = %v, want 1", n)
	}
}

func TestLuaRegister_BadMatchCriteria(t *testing.T) {
	r := msgbus.New()
	L := newBridgeState(t, r)

	if err := L.DoString(`msgbus.register("Game", function() end, "sideways")`); err == nil {
		t.Error("expected error for unknown match criteria")
	}
}

func TestLuaListenerError_ReportedNotFatal(t *testing.T) {
	sink := diag.NewCapture()
	r := msgbus.New(msgbus.WithDiagnostics(sink))
	L := newBridgeState(t, r)

	err := L.DoString(`
		msgbus.register("Game", function(ch, msg)
			error("listener blew up")
		end)
	`)
	if err != nil {
		t.Fatalf("DoString failed: %v", err)
	}

	after := 0
	r.Register("Game", func(channel.Channel, msgtype.Descriptor, any) { after++ })

	msgbus.Broadcast(r, channel.Channel("Game"), map[string]any{})

	if sink.Count(diag.LevelWarn) != 1 {
		t.Errorf("expected 1 warning for failed lua listener, got %d", sink.Count(diag.LevelWarn))
	}
	if after != 1 {
		t.Error("broadcast should continue past a failed lua listener")
	}
}

func TestToGoValue_CircularTable(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	t1 := L.NewTable()
	t1.RawSetString("self", t1)
	t1.RawSetString("name", lua.LString("loop"))

	got, ok := toGoValue(t1).(map[string]any)
	if !ok {
		t.Fatalf("toGoValue = %T, want map", got)
	}
	if got["name"] != "loop" {
		t.Errorf("name = %v", got["name"])
	}
	if got["self"] != nil {
		t.Errorf("circular reference should collapse to nil, got %v", got["self"])
	}
}
