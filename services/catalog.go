package services

// Item categories of the survey catalog.
const (
	CategoryLiteracy = "literacy"
	CategoryBehavior = "behavior"
	CategoryDecision = "decision"
)

// Item is one Likert-scaled (1-4) survey question. Translation is empty for
// items without an Indonesian rendering.
type Item struct {
	ID          string
	Text        string
	Translation string
	Category    string
}

// Label is the Indonesian translation, or the English text when there is none.
func (i Item) Label() string {
	if i.Translation == "" {
		return i.Text
	}
	return i.Translation
}

// Catalog is the ordered list of every survey item the dashboard analyses.
// Both section analyses read from it.
var Catalog = []Item{
	{"lit_risk_numbers", "I am able to identify risks and discrepancies and view numbers in a complex way", "Kemampuan mengidentifikasi risiko dan memahami angka secara kompleks", CategoryLiteracy},
	{"lit_good_investment", "I am able to recognize a good financial investment", "Kemampuan mengenali investasi keuangan yang baik", CategoryLiteracy},
	{"lit_behind_numbers", "I am able to understand what is behind the numbers", "Kemampuan memahami makna di balik angka", CategoryLiteracy},
	{"lit_allot_period", "I am able to and divide it accordingly across an allotted period to the right concerned areas", "Kemampuan membagi keuangan sesuai periode dan area yang tepat", CategoryLiteracy},
	{"lit_project_cash", "I am able to project the amount of cash that will be available to me in the future", "Kemampuan memperkirakan jumlah uang tunai di masa depan", CategoryLiteracy},
	{"lit_avoid_impulse", "I am able to plan ahead to avoid impulse spending", "Kemampuan merencanakan keuangan untuk menghindari pengeluaran impulsif", CategoryLiteracy},
	{"lit_metrics", "I am able to understand numbers and financial metrics", "Pemahaman terhadap angka dan metrik keuangan", CategoryLiteracy},
	{"lit_cash_flow", "I am able to understand what drives cash flow and profits", "Pemahaman terhadap faktor yang memengaruhi arus kas dan laba", CategoryLiteracy},
	{"lit_statements", "I am able to understand the company's financial statements and some core performance measures", "Pemahaman terhadap laporan keuangan dan indikator kinerja utama", CategoryLiteracy},
	{"lit_fintech_risk", "Awareness about the potential of financial risk in using digital financial provider or fintech such as the legality of the fintech provider interest rate and transaction fee", "Kesadaran terhadap risiko keuangan dalam penggunaan fintech", CategoryLiteracy},
	{"lit_exp_payment", "Having experience in using the product and service of fintech for digital payment", "Pengalaman menggunakan fintech untuk pembayaran digital", CategoryLiteracy},
	{"lit_exp_financing", "Experience in using the product and service of fintech for financing (loan) and investment", "Pengalaman menggunakan fintech untuk pembiayaan dan investasi", CategoryLiteracy},
	{"lit_exp_asset", "Experience in using the product and service of fintech for asset management", "Pengalaman menggunakan fintech untuk pengelolaan aset", CategoryLiteracy},
	{"lit_digital_payment", "Having a good understanding of digital payment products such as E-Debit E-Credit  E-Money   Mobile/Internet banking  E -wallet", "Pemahaman produk pembayaran digital (e-money, e-wallet, mobile banking)", CategoryLiteracy},
	{"lit_digital_asset", "Having a good understanding of product digital asset management", "Pemahaman produk pengelolaan aset digital", CategoryLiteracy},
	{"lit_digital_alternatives", "Having a good understanding of digital alternatives", "Pemahaman terhadap alternatif digital", CategoryLiteracy},
	{"lit_digital_insurance", "Having a good understanding of digital insurance", "Pemahaman terhadap produk asuransi digital", CategoryLiteracy},
	{"lit_consumer_rights", "Having a good understanding of customer rights and protection as well as the procedure to complain about the service from digital  financial providers", "Pemahaman terhadap hak konsumen dan prosedur pengaduan layanan fintech", CategoryLiteracy},

	{"beh_expense_planning", "I take part in domestic expense planning", "Berpartisipasi dalam perencanaan pengeluaran rumah tangga", CategoryBehavior},
	{"beh_critical_friends", "I usually have a critical view of the way my friends deal with money", "Memiliki pandangan kritis terhadap cara teman mengelola uang", CategoryBehavior},
	{"beh_family_decisions", "I like to participate in family decision making when we buy something expensive for home", "Terlibat dalam keputusan pembelian besar keluarga", CategoryBehavior},
	{"beh_advise_others", "I advise others on money matters", "Memberi nasihat kepada orang lain tentang uang", CategoryBehavior},
	{"beh_save_for_likes", "I always try to save some money to do things I really like", "Selalu mencoba menabung untuk hal yang disukai", CategoryBehavior},
	{"beh_negotiate", "I always like to negotiate prices when I buy", "Suka menawar harga saat membeli", CategoryBehavior},
	{"beh_emergency_fund", "I suggest at home that we keep money aside for emergencies", "Menyarankan menabung untuk keadaan darurat", CategoryBehavior},
	{"beh_promotions", "I keep an eye on promotions and discounts", "Memperhatikan promo dan diskon", CategoryBehavior},
	{"beh_think_before_buying", "I like to think thoroughly before deciding to buy something", "Berpikir matang sebelum membeli", CategoryBehavior},
	{"beh_research_prices", "I like to research prices whenever I buy something", "Membandingkan harga sebelum membeli", CategoryBehavior},
	{"beh_economy_news", "I pay attention to news about the economy as it may affect my family", "Memperhatikan berita ekonomi yang berdampak pada keluarga", CategoryBehavior},
	{"beh_without_thought", "I often do things without giving them much thought", "Melakukan hal tanpa berpikir panjang", CategoryBehavior},
	{"beh_impulsive", "I am impulsive", "Cenderung impulsif", CategoryBehavior},
	{"beh_speak_first", "I say things before I have thought them through", "Sering bertindak sebelum mempertimbangkan dampaknya", CategoryBehavior},

	{"dec_adapt", "I am able to quickly change my financial decisions as per the changes in circumstance", "", CategoryDecision},
	{"dec_personal_risk", "Appraise of personal risk helps me in better financial decision making", "", CategoryDecision},
	{"dec_compare_time", "I make sound financial decision by comparing results over the time", "", CategoryDecision},
	{"dec_compare_expenses", "I make sound financial decisions by comparing results over expenses involved", "", CategoryDecision},
	{"dec_search_options", "I am able to search for economic options during financial decision making", "", CategoryDecision},
	{"dec_foresee", "I am able to foresee the long term and short-term consequences of the financial decisions I undertake", "Mampu memperkirakan dampak jangka pendek dan panjang keputusan keuangan", CategoryDecision},
	{"dec_past_strategies", "Previously used decision strategies help me in better financial decision making", "", CategoryDecision},
	{"dec_becoming_secure", "I am becoming financially secure", "Mulai mencapai kestabilan finansial", CategoryDecision},
	{"dec_securing_future", "I am securing my financial future", "Menjamin masa depan finansial", CategoryDecision},
	{"dec_achieve_goals", "I will achieve the financial goals that I have set for myself", "Berkomitmen mencapai tujuan finansial pribadi", CategoryDecision},
	{"dec_saved_enough", "I have saved (or will be able to save) enough money to last me to the end of my life", "", CategoryDecision},
	{"dec_never_have", "Because of my money situation I feel I will never have the things I want in life", "", CategoryDecision},
	{"dec_behind", "I am behind with my finances", "", CategoryDecision},
	{"dec_control_life", "My finances control my life", "", CategoryDecision},
	{"dec_setback", "Whenever I feel in control of my finances something happens that sets me back", "", CategoryDecision},
	{"dec_obsess", "I am unable to enjoy life because I obsess too much about money", "Sulit menikmati hidup karena terlalu fokus pada uang", CategoryDecision},
}

// ItemsIn returns the catalog items belonging to any of the categories, in
// catalog order.
func ItemsIn(categories ...string) []Item {
	want := make(map[string]bool, len(categories))
	for _, c := range categories {
		want[c] = true
	}
	var items []Item
	for _, item := range Catalog {
		if want[item.Category] {
			items = append(items, item)
		}
	}
	return items
}

// itemByID looks up a catalog item.
func itemByID(id string) (Item, bool) {
	for _, item := range Catalog {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}
