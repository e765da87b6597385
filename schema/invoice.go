package schema

import "github.com/tbxark/docform/types"

// InvoicePrimaryKey is the field the invoice display name is derived from.
const InvoicePrimaryKey = "contract_number"

// InvoiceFields is the default payment invoice form.
func InvoiceFields() []types.FieldSpec {
	return []types.FieldSpec{
		{
			Key:    "contract_number",
			Prompt: "Введіть номер договору (id.день.місяць.рік.номер_договору):",
			Type:   types.ValidationMixed,
		},
		{
			Key:    "contract_date",
			Prompt: "Введіть дату укладання договору (Приклад: 1 січня 2025р.):",
			Type:   types.ValidationText,
		},
		{
			Key:    "customer",
			Prompt: "Введіть замовника (Приклад: ФОП Прізвище Ім'я Побатькові):",
			Type:   types.ValidationText,
		},
		{
			Key:    "amount",
			Prompt: "Введіть суму (Приклад: 4000,00):",
			Type:   types.ValidationNumber,
		},
		{
			Key:    "items_total_text",
			Prompt: "Всього найменувань (Приклад: чотири тисячі):",
			Type:   types.ValidationText,
		},
	}
}

// Invoice returns the default invoice schema.
func Invoice() *Schema {
	return MustNew(InvoiceFields(), InvoicePrimaryKey)
}
