// Package flyer lays out a listing record into a fixed, single-page A4
// document: label selection, slot placement and HTML rendering.
package flyer

import "github.com/sora-estate/maisoku/internal/listing"

// LabelSet holds every displayed caption for one target language. Each
// supported language must cover every caption; completeness is asserted by a
// test so a missing mapping is caught at build time, not at render time.
type LabelSet struct {
	Subtitle       string
	Location       string
	Access         string
	Layout         string
	Size           string
	BuiltYear      string
	Floor          string
	ManagementFee  string
	RepairFund     string
	CoverageRatio  string
	FloorAreaRatio string
	Restrictions   string
	Facilities     string
	Description    string
	Features       string
	Transaction    string
	TransactionVal string
	Advertising    string
	AdvertisingVal string
}

// Issuer is static organizational metadata about the document issuer. It is
// configuration, not extracted data, and is localized like field labels.
type Issuer struct {
	Name        string
	License     string
	Guarantee   string
	Association string
	PostalCode  string
	Address     string
	Phone       string
	Fax         string
	Email       string
	Website     string
}

var labelSets = map[listing.Language]LabelSet{
	listing.LanguageEnglish: {
		Subtitle:       "Premium Property Offering",
		Location:       "Location",
		Access:         "Access",
		Layout:         "Layout",
		Size:           "Size",
		BuiltYear:      "Built",
		Floor:          "Floor",
		ManagementFee:  "Management Fee",
		RepairFund:     "Repair Fund",
		CoverageRatio:  "Coverage Ratio",
		FloorAreaRatio: "Floor-Area Ratio",
		Restrictions:   "Restrictions",
		Facilities:     "Facilities",
		Description:    "Property Description",
		Features:       "Key Features",
		Transaction:    "Transaction",
		TransactionVal: "General Mediation",
		Advertising:    "Advertising Fee",
		AdvertisingVal: "Not Permitted",
	},
	listing.LanguageChinese: {
		Subtitle:       "精選優質物件",
		Location:       "所在地",
		Access:         "交通",
		Layout:         "格局",
		Size:           "面積",
		BuiltYear:      "建築年份",
		Floor:          "樓層",
		ManagementFee:  "管理費",
		RepairFund:     "修繕基金",
		CoverageRatio:  "建蔽率",
		FloorAreaRatio: "容積率",
		Restrictions:   "用途限制",
		Facilities:     "設備",
		Description:    "物件介紹",
		Features:       "物件特色",
		Transaction:    "交易型態",
		TransactionVal: "一般仲介",
		Advertising:    "廣告費",
		AdvertisingVal: "不可",
	},
}

var issuers = map[listing.Language]Issuer{
	listing.LanguageEnglish: {
		Name:        "SORA Co., Ltd.",
		License:     "Real Estate License: Osaka Governor (1) No. 65866",
		Guarantee:   "Guarantee: National Real Estate Transaction Guarantee Association",
		Association: "Member: Osaka Real Estate Transaction Association, West Branch",
		PostalCode:  "550-0003",
		Address:     "RE-021 10F, 1-16-8 Kyomachibori, Nishi-ku, Osaka",
		Phone:       "06-4400-7569",
		Fax:         "06-7635-9734",
		Email:       "info@sora-jp.net",
		Website:     "www.sora-jp.net",
	},
	listing.LanguageChinese: {
		Name:        "SORA株式会社",
		License:     "宅建免許 大阪府知事(1)第65866号",
		Guarantee:   "保証協会 (公社)全国宅地建物取引業保証協会",
		Association: "所属協会 (一社)大阪府宅地建物取引業協会 西支部",
		PostalCode:  "550-0003",
		Address:     "大阪府大阪市西区京町堀1-16-8 RE-021-10F",
		Phone:       "06-4400-7569",
		Fax:         "06-7635-9734",
		Email:       "info@sora-jp.net",
		Website:     "www.sora-jp.net",
	},
}

// Labels returns the label dictionary for lang. Unsupported languages fall
// back to English.
func Labels(lang listing.Language) LabelSet {
	if ls, ok := labelSets[lang]; ok {
		return ls
	}
	return labelSets[listing.LanguageEnglish]
}

// IssuerInfo returns the localized issuer metadata for lang.
func IssuerInfo(lang listing.Language) Issuer {
	if is, ok := issuers[lang]; ok {
		return is
	}
	return issuers[listing.LanguageEnglish]
}
