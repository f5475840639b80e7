package editor

import (
	"errors"
	"fmt"

	"github.com/mmynk/billsplit/internal/models"
)

var (
	ErrUnknownOp   = errors.New("unknown edit operation")
	ErrUnknownMode = errors.New("unknown adjustment mode")
)

// Op names an edit operation.
type Op string

const (
	OpRenameBill        Op = "rename_bill"
	OpAddPerson         Op = "add_person"
	OpRenamePerson      Op = "rename_person"
	OpDeletePerson      Op = "delete_person"
	OpAddItem           Op = "add_item"
	OpRenameItem        Op = "rename_item"
	OpDeleteItem        Op = "delete_item"
	OpSetCostExpression Op = "set_cost_expression"
	OpEvaluateCost      Op = "evaluate_cost"
	OpSetCost           Op = "set_cost"
	OpSetSplit          Op = "set_split"
	OpSplitEvenly       Op = "split_evenly"
	OpSetTax            Op = "set_tax"
	OpSetTip            Op = "set_tip"
)

// Edit is a serialisable edit. Which fields are read depends on Op:
//
//	rename_bill          Name
//	add_person           Name (optional)
//	rename_person        PersonID, Name
//	delete_person        PersonID
//	add_item             Name (optional)
//	rename_item          ItemID, Name
//	delete_item          ItemID
//	set_cost_expression  ItemID, Text
//	evaluate_cost        ItemID
//	set_cost             ItemID, Text
//	set_split            ItemID, PersonID, Ratio
//	split_evenly         ItemID
//	set_tax, set_tip     Mode, Text
type Edit struct {
	Op       Op
	PersonID string
	ItemID   string
	Name     string
	Text     string
	Mode     string
	Ratio    float64
}

// Apply applies a single edit.
func Apply(bill models.Bill, e Edit) (models.Bill, error) {
	switch e.Op {
	case OpRenameBill:
		return Rename(bill, e.Name), nil
	case OpAddPerson:
		bill, _ = AddPerson(bill, e.Name)
		return bill, nil
	case OpRenamePerson:
		return RenamePerson(bill, e.PersonID, e.Name), nil
	case OpDeletePerson:
		return DeletePerson(bill, e.PersonID), nil
	case OpAddItem:
		bill, _ = AddItem(bill, e.Name)
		return bill, nil
	case OpRenameItem:
		return RenameItem(bill, e.ItemID, e.Name), nil
	case OpDeleteItem:
		return DeleteItem(bill, e.ItemID), nil
	case OpSetCostExpression:
		return SetCostExpression(bill, e.ItemID, e.Text), nil
	case OpEvaluateCost:
		return EvaluateCost(bill, e.ItemID), nil
	case OpSetCost:
		return SetCost(bill, e.ItemID, e.Text), nil
	case OpSetSplit:
		return SetSplit(bill, e.ItemID, e.PersonID, e.Ratio), nil
	case OpSplitEvenly:
		return SplitEvenly(bill, e.ItemID), nil
	case OpSetTax, OpSetTip:
		adj, err := ParseAdjustment(e.Mode, e.Text)
		if err != nil {
			return bill, err
		}
		if e.Op == OpSetTax {
			return SetTax(bill, adj), nil
		}
		return SetTip(bill, adj), nil
	default:
		return bill, fmt.Errorf("%w: %q", ErrUnknownOp, e.Op)
	}
}

// ApplyAll applies edits in order. If any edit fails the original bill is
// returned with an error naming the failing edit.
func ApplyAll(bill models.Bill, edits []Edit) (models.Bill, error) {
	next := bill
	for i, e := range edits {
		var err error
		next, err = Apply(next, e)
		if err != nil {
			return bill, fmt.Errorf("edit %d: %w", i, err)
		}
	}
	return next, nil
}
