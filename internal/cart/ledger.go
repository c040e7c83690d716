// Package cart implements the shopping cart state machine: a pure ledger
// that maps (state, action) to a new state, and a Store that owns the
// current state and fans updates out to subscribers.
package cart

import "terrano-storefront/internal/domain"

// TaxRate is the fixed tax rate applied to the cart subtotal.
const TaxRate = 0.20

// ActionType enumerates the cart transitions.
type ActionType string

const (
	AddItem          ActionType = "add_item"
	RemoveItem       ActionType = "remove_item"
	UpdateQuantity   ActionType = "update_quantity"
	IncreaseQuantity ActionType = "increase_quantity"
	DecreaseQuantity ActionType = "decrease_quantity"
	ClearCart        ActionType = "clear_cart"
	OpenCart         ActionType = "open_cart"
	CloseCart        ActionType = "close_cart"
)

// Action is a single cart transition request. Item is read only by
// AddItem; ItemID by the per-line actions; Quantity by UpdateQuantity.
type Action struct {
	Type     ActionType
	Item     domain.CartLine
	ItemID   string
	Quantity int
}

// Apply computes the next cart state for an action. It never fails:
// unknown ids and non-positive quantities degrade to no-ops or removals.
// The input state is not modified; the returned state shares no line
// slice with it.
func Apply(state domain.CartState, action Action) domain.CartState {
	switch action.Type {
	case AddItem:
		return recompute(addLine(state, action.Item))
	case RemoveItem:
		return recompute(removeLine(state, action.ItemID))
	case UpdateQuantity:
		if action.Quantity <= 0 {
			return recompute(removeLine(state, action.ItemID))
		}
		return recompute(setQuantity(state, action.ItemID, action.Quantity))
	case IncreaseQuantity:
		return recompute(adjustQuantity(state, action.ItemID, +1))
	case DecreaseQuantity:
		if line, ok := findLine(state, action.ItemID); ok && line.Quantity == 1 {
			return recompute(removeLine(state, action.ItemID))
		}
		return recompute(adjustQuantity(state, action.ItemID, -1))
	case ClearCart:
		// Visibility survives a clear; everything else resets.
		return recompute(domain.CartState{Open: state.Open})
	case OpenCart:
		next := cloneState(state)
		next.Open = true
		return next
	case CloseCart:
		next := cloneState(state)
		next.Open = false
		return next
	default:
		return cloneState(state)
	}
}

func findLine(state domain.CartState, id string) (domain.CartLine, bool) {
	for _, line := range state.Lines {
		if line.ID == id {
			return line, true
		}
	}
	return domain.CartLine{}, false
}

func cloneState(state domain.CartState) domain.CartState {
	next := state
	next.Lines = make([]domain.CartLine, len(state.Lines))
	copy(next.Lines, state.Lines)
	return next
}

func addLine(state domain.CartState, item domain.CartLine) domain.CartState {
	next := cloneState(state)
	for i := range next.Lines {
		if next.Lines[i].ID == item.ID {
			next.Lines[i].Quantity++
			return next
		}
	}
	item.Quantity = 1
	next.Lines = append(next.Lines, item)
	return next
}

func removeLine(state domain.CartState, id string) domain.CartState {
	next := state
	next.Lines = make([]domain.CartLine, 0, len(state.Lines))
	for _, line := range state.Lines {
		if line.ID != id {
			next.Lines = append(next.Lines, line)
		}
	}
	return next
}

func setQuantity(state domain.CartState, id string, qty int) domain.CartState {
	next := cloneState(state)
	for i := range next.Lines {
		if next.Lines[i].ID == id {
			next.Lines[i].Quantity = qty
			break
		}
	}
	return next
}

func adjustQuantity(state domain.CartState, id string, delta int) domain.CartState {
	next := cloneState(state)
	for i := range next.Lines {
		if next.Lines[i].ID == id {
			next.Lines[i].Quantity += delta
			break
		}
	}
	return next
}

// recompute derives subtotal, tax, total and item count from the line
// sequence. No rounding is applied; formatting is the caller's concern.
func recompute(state domain.CartState) domain.CartState {
	var subtotal float64
	var count int
	for _, line := range state.Lines {
		subtotal += line.Price * float64(line.Quantity)
		count += line.Quantity
	}
	state.Subtotal = subtotal
	state.Tax = subtotal * TaxRate
	state.Total = subtotal + state.Tax
	state.ItemCount = count
	return state
}
