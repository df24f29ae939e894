package model

// Category is a fixed classification entries can reference. Type restricts
// which transaction types may use it.
type Category struct {
	ID   string
	Name string
	Icon string
	Type TransactionType
}

// UnknownCategoryName is shown for category IDs missing from the catalog.
const UnknownCategoryName = "未知"

// Categories is the static catalog.
var Categories = []Category{
	{ID: "meals", Name: "三餐", Icon: "Utensils", Type: TypeExpense},
	{ID: "snacks", Name: "零食", Icon: "Coffee", Type: TypeExpense},
	{ID: "clothes", Name: "衣服", Icon: "ShoppingBag", Type: TypeExpense},
	{ID: "transport", Name: "交通", Icon: "Car", Type: TypeExpense},
	{ID: "travel", Name: "旅行", Icon: "Plane", Type: TypeExpense},
	{ID: "kids", Name: "孩子", Icon: "Baby", Type: TypeExpense},
	{ID: "medical", Name: "医疗", Icon: "Stethoscope", Type: TypeExpense},
	{ID: "coffee", Name: "咖啡", Icon: "Coffee", Type: TypeExpense},
	{ID: "phone", Name: "话费网费", Icon: "Smartphone", Type: TypeExpense},
	{ID: "smoke", Name: "烟酒", Icon: "Cigarette", Type: TypeExpense},
	{ID: "study", Name: "学习", Icon: "GraduationCap", Type: TypeExpense},
	{ID: "housing", Name: "住房", Icon: "Home", Type: TypeExpense},
	{ID: "beauty", Name: "美妆", Icon: "Sparkles", Type: TypeExpense},
	{ID: "gift", Name: "送礼", Icon: "Gift", Type: TypeExpense},
	{ID: "digital", Name: "数码", Icon: "Gamepad2", Type: TypeExpense},
	{ID: "sports", Name: "运动", Icon: "HeartPulse", Type: TypeExpense},
	{ID: "utilities", Name: "水电煤", Icon: "Zap", Type: TypeExpense},
	{ID: "other", Name: "其它", Icon: "MoreHorizontal", Type: TypeExpense},

	{ID: "salary", Name: "工资", Icon: "Wallet", Type: TypeIncome},
	{ID: "bonus", Name: "奖金", Icon: "Sparkles", Type: TypeIncome},
	{ID: "investment", Name: "投资", Icon: "Landmark", Type: TypeIncome},
	{ID: "redpacket", Name: "发红包", Icon: "Gift", Type: TypeIncome},
}

// Accounts are the suggested account names. Account fields are free form.
var Accounts = []string{"默认资产", "支付宝", "微信支付", "银行卡", "现金"}

// Ledgers are the selectable ledger names. The first is the default.
var Ledgers = []string{"初始账本", "日常账本", "装修账本", "旅游账本"}

// DefaultLedger is selected when nothing else is configured.
func DefaultLedger() string {
	return Ledgers[0]
}

// CategoryByID looks up a catalog entry.
func CategoryByID(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryName returns the display name for id, or UnknownCategoryName.
func CategoryName(id string) string {
	if c, ok := CategoryByID(id); ok {
		return c.Name
	}
	return UnknownCategoryName
}

// CategoriesFor lists the categories a transaction of type typ may use.
// Transfers borrow the expense categories.
func CategoriesFor(typ TransactionType) []Category {
	if typ == TypeTransfer {
		typ = TypeExpense
	}
	var out []Category
	for _, c := range Categories {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}
