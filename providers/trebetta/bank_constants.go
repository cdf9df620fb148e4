package trebetta

// Bank is an entry in the static NUBAN bank directory used by the withdrawal
// form. Codes follow the resolver provider's scheme.
type Bank struct {
	ID   string
	Name string
	Code string
}

var NigerianBanks = []Bank{
	{ID: "access", Name: "Access Bank", Code: "044"},
	{ID: "gtbank", Name: "GTBank", Code: "058"},
	{ID: "zenith", Name: "Zenith Bank", Code: "057"},
	{ID: "first", Name: "First Bank", Code: "011"},
	{ID: "sterling", Name: "Sterling Bank", Code: "232"},
	{ID: "union", Name: "Union Bank", Code: "032"},
	{ID: "uba", Name: "UBA", Code: "033"},
	{ID: "polaris", Name: "Polaris Bank", Code: "076"},
	{ID: "keystone", Name: "Keystone Bank", Code: "082"},
	{ID: "fidelity", Name: "Fidelity Bank", Code: "070"},
	{ID: "heritage", Name: "Heritage Bank", Code: "030"},
	{ID: "wema", Name: "Wema Bank", Code: "035"},
	{ID: "kuda", Name: "Kuda", Code: "50211"},
	{ID: "opay", Name: "OPay", Code: "999992"},
	{ID: "providus", Name: "Providus Bank", Code: "101"},
}

func BankByID(id string) (*Bank, bool) {
	for i := range NigerianBanks {
		if NigerianBanks[i].ID == id {
			return &NigerianBanks[i], true
		}
	}
	return nil, false
}

func BankByCode(code string) (*Bank, bool) {
	for i := range NigerianBanks {
		if NigerianBanks[i].Code == code {
			return &NigerianBanks[i], true
		}
	}
	return nil, false
}

var bankCodeToLogoMapping = map[string]string{
	"044":   "https://nigerianbanks.xyz/logo/access-bank.png",
	"058":   "https://nigerianbanks.xyz/logo/guaranty-trust-bank.png",
	"057":   "https://nigerianbanks.xyz/logo/zenith-bank.png",
	"011":   "https://nigerianbanks.xyz/logo/first-bank-of-nigeria.png",
	"232":   "https://nigerianbanks.xyz/logo/sterling-bank.png",
	"032":   "https://nigerianbanks.xyz/logo/union-bank-of-nigeria.png",
	"033":   "https://nigerianbanks.xyz/logo/united-bank-for-africa.png",
	"076":   "https://nigerianbanks.xyz/logo/polaris-bank.png",
	"082":   "https://nigerianbanks.xyz/logo/keystone-bank.png",
	"070":   "https://nigerianbanks.xyz/logo/fidelity-bank.png",
	"030":   "https://nigerianbanks.xyz/logo/heritage-bank.png",
	"035":   "https://nigerianbanks.xyz/logo/wema-bank.png",
	"50211": "https://nigerianbanks.xyz/logo/kuda-bank.png",
	"101":   "https://nigerianbanks.xyz/logo/default-image.png",
}

func GetBankLogoByCode(bankCode string) string {
	logo, exists := bankCodeToLogoMapping[bankCode]
	if !exists {
		return "https://nigerianbanks.xyz/logo/default-image.png"
	}
	return logo
}
