package cart

// Action 购物车状态迁移动作
type Action interface {
	Name() string
}

// AddLineAction 加购；已存在同标识行时累加数量
type AddLineAction struct {
	Line Line
}

// RemoveLineAction 删除行（幂等）
type RemoveLineAction struct {
	Key Key
}

// UpdateQuantityAction 设置数量，<=0 等同删除
type UpdateQuantityAction struct {
	Key      Key
	Quantity int
}

// ClearAction 清空
type ClearAction struct{}

// LoadAction 以持久化内容替换状态
type LoadAction struct {
	Lines []Line
}

// SettleAction 扣减已下单的数量，扣到 0 的行被删除
type SettleAction struct {
	Lines []Line
}

func (AddLineAction) Name() string        { return "add_line" }
func (RemoveLineAction) Name() string     { return "remove_line" }
func (UpdateQuantityAction) Name() string { return "update_quantity" }
func (ClearAction) Name() string          { return "clear" }
func (LoadAction) Name() string           { return "load" }
func (SettleAction) Name() string         { return "settle" }

// Reduce 纯函数状态迁移，不修改入参
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case AddLineAction:
		return reduceAdd(state, a.Line)
	case RemoveLineAction:
		return reduceRemove(state, a.Key)
	case UpdateQuantityAction:
		if a.Quantity <= 0 {
			return reduceRemove(state, a.Key)
		}
		if a.Quantity > MaxLineQuantity {
			return state
		}
		idx := state.indexOf(a.Key)
		if idx < 0 {
			return state
		}
		next := state.clone()
		next.Lines[idx].Quantity = a.Quantity
		return next
	case ClearAction:
		return State{}
	case SettleAction:
		next := state
		for _, ordered := range a.Lines {
			idx := next.indexOf(ordered.Key())
			if idx < 0 || ordered.Quantity <= 0 {
				continue
			}
			remaining := next.Lines[idx].Quantity - ordered.Quantity
			if remaining <= 0 {
				next = reduceRemove(next, ordered.Key())
				continue
			}
			next = next.clone()
			next.Lines[idx].Quantity = remaining
		}
		return next
	case LoadAction:
		next := State{}
		for _, line := range a.Lines {
			if line.Quantity <= 0 || !line.Key().Valid() {
				continue
			}
			next = reduceAdd(next, line)
		}
		return next
	default:
		return state
	}
}

// reduceAdd 合并后超过 MaxLineQuantity 时不做修改
func reduceAdd(state State, line Line) State {
	if line.Quantity <= 0 || line.Quantity > MaxLineQuantity || !line.Key().Valid() {
		return state
	}
	next := state.clone()
	if idx := state.indexOf(line.Key()); idx >= 0 {
		if state.Lines[idx].Quantity > MaxLineQuantity-line.Quantity {
			return state
		}
		next.Lines[idx].Quantity += line.Quantity
		return next
	}
	next.Lines = append(next.Lines, line)
	return next
}

func reduceRemove(state State, key Key) State {
	idx := state.indexOf(key)
	if idx < 0 {
		return state
	}
	lines := make([]Line, 0, len(state.Lines)-1)
	lines = append(lines, state.Lines[:idx]...)
	lines = append(lines, state.Lines[idx+1:]...)
	return State{Lines: lines}
}
