// Package bds reads the BDS Bike Sensor marketplace.
package bds

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"motohub/internal/domain"
	"motohub/internal/source"
)

const (
	SiteName = "BDS"
	BaseURL  = "https://www.bds-bikesensor.net"
)

var clientID = regexp.MustCompile(`client/(\d+)`)

// BDS has no maker index page; maker pages live under fixed slugs.
var makers = []struct {
	slug string
	name string
}{
	{"honda", "ホンダ"}, {"suzuki", "スズキ"}, {"yamaha", "ヤマハ"}, {"kawasaki", "カワサキ"},
	{"daihatsu", "ダイハツ"}, {"bridgestone", "ブリジストン"}, {"meguro", "メグロ"}, {"rodeo", "ロデオ"},
	{"plot", "プロト"}, {"bmw", "BMW"}, {"ktm", "KTM"}, {"aprilia", "アプリリア"},
	{"mv_agusta", "MVアグスタ"}, {"gilera", "ジレラ"}, {"ducati", "ドゥカティ"}, {"triumph", "トライアンフ"},
	{"norton", "ノートン"}, {"harley_davidson", "ハーレーダビッドソン"}, {"husqvarna", "ハスクバーナ"},
	{"bimota", "ビモータ"}, {"buell", "ビューエル"}, {"vespa", "ベスパ"}, {"moto_guzzi", "モトグッツィ"},
	{"royal_enfield", "ロイヤルエンフィールド"}, {"daelim", "DAELIM"}, {"gg", "GG"}, {"pgo", "PGO"},
	{"sym", "SYM"}, {"italjet", "イタルジェット"}, {"gasgas", "ガスガス"}, {"kymco", "キムコ"},
	{"krauser", "クラウザー"}, {"sachs", "ザックス"}, {"derbi", "デルビ"}, {"tomos", "トモス"},
	{"piaggio", "ピアジオ"}, {"bsa", "ビーエスエー"}, {"fantic", "ファンティック"}, {"peugeot", "プジョー"},
	{"beta", "ベータ"}, {"benelli", "ベネリ"}, {"magni", "マーニ"}, {"moto_morini", "モトモリーニ"},
	{"mondial", "モンディアル"}, {"montesa", "モンテッサ"}, {"lambretta", "ランブレッタ"},
	{"adiva", "アディバ"}, {"megelli", "メガリ"}, {"indian", "インディアン"}, {"gpx", "GPX"},
	{"phoenix", "PHOENIX"}, {"leonart", "レオンアート"}, {"brp", "BRP"}, {"brixton", "BRIXTON"},
	{"mutt", "MUTT"},
}

var categories = []struct {
	slug string
	name string
}{
	{"gentsuki", "原付スクーター"}, {"scooter51_125", "スクーター/51～125cc"},
	{"big_scooter", "スクーター/126cc以上"}, {"naked", "ネイキッド"}, {"sports", "スポーツ/レプリカ"},
	{"classic", "クラシック"}, {"offroad", "オフロード"}, {"american", "アメリカン"},
	{"tourer", "ツアラー"}, {"adventure", "アドベンチャー"}, {"streetfighter", "ストリートファイター"},
	{"minibike", "ミニバイク"}, {"ev", "EV"}, {"other", "その他"},
}

var prefectures = []string{
	"北海道", "青森県", "岩手県", "宮城県", "秋田県", "山形県", "福島県",
	"茨城県", "栃木県", "群馬県", "埼玉県", "千葉県", "東京都", "神奈川県",
	"新潟県", "富山県", "石川県", "福井県", "山梨県", "長野県", "岐阜県",
	"静岡県", "愛知県", "三重県", "滋賀県", "京都府", "大阪府", "兵庫県",
	"奈良県", "和歌山県", "鳥取県", "島根県", "岡山県", "広島県", "山口県",
	"徳島県", "香川県", "愛媛県", "高知県", "福岡県", "佐賀県", "長崎県",
	"熊本県", "大分県", "宮崎県", "鹿児島県", "沖縄県",
}

type Source struct {
	baseURL string
}

var _ source.Source = (*Source)(nil)

func New() *Source {
	return &Source{baseURL: BaseURL}
}

func (s *Source) Name() string { return SiteName }

func (s *Source) Makers(context.Context, source.Fetcher) ([]domain.MakerTarget, error) {
	targets := make([]domain.MakerTarget, 0, len(makers))
	for _, m := range makers {
		targets = append(targets, domain.MakerTarget{
			Name: m.name,
			URL:  s.baseURL + "/bike/maker/" + m.slug,
		})
	}
	return targets, nil
}

func (s *Source) Models(doc *goquery.Document) []domain.ExtractedModel {
	var models []domain.ExtractedModel
	doc.Find(".model_item").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a.c-bike_image").First()
		name := source.CleanName(link.AttrOr("title", ""))
		identifier := strings.TrimSpace(item.Find("input.model-checkbox").AttrOr("value", ""))
		if name == "" || identifier == "" {
			return
		}
		models = append(models, domain.ExtractedModel{
			Identifier: identifier,
			RawName:    name,
			ListingURL: source.Resolve(doc, s.baseURL, link.AttrOr("href", "")),
		})
	})
	return models
}

func (s *Source) Categories(context.Context, source.Fetcher) ([]domain.CategoryTarget, error) {
	targets := make([]domain.CategoryTarget, 0, len(categories))
	for _, c := range categories {
		targets = append(targets, domain.CategoryTarget{
			Name: c.name,
			URL:  s.baseURL + "/bike/type/" + c.slug,
		})
	}
	return targets, nil
}

// CategoryModels lists the model names of a type page. The page heading is
// not reliable, so the category comes from the target.
func (s *Source) CategoryModels(doc *goquery.Document) (string, []string) {
	var names []string
	doc.Find(".c-search_name_block_text").Each(func(_ int, block *goquery.Selection) {
		if name := source.CleanName(block.Text()); name != "" {
			names = append(names, name)
		}
	})
	return "", names
}

// Regions returns the shop search of every prefecture, keyed by JIS code.
func (s *Source) Regions(context.Context, source.Fetcher) ([]domain.RegionTarget, error) {
	regions := make([]domain.RegionTarget, 0, len(prefectures))
	for i, name := range prefectures {
		regions = append(regions, domain.RegionTarget{
			Name: name,
			URL:  fmt.Sprintf("%s/shop?prefectureCodes%%5B%%5D=%02d", s.baseURL, i+1),
		})
	}
	return regions, nil
}

// Shops parses a shop search page. The listing does not show addresses, so
// shops from BDS are matched to other sites by name.
func (s *Source) Shops(doc *goquery.Document) ([]domain.ExtractedShop, string) {
	var shops []domain.ExtractedShop
	doc.Find("li.c-search_block_list_item.type_shop").Each(func(_ int, item *goquery.Selection) {
		link := item.Find(".c-search_block_shop_title01 a").First()
		name := source.Text(link)
		if name == "" {
			return
		}
		href := link.AttrOr("href", "")

		shop := domain.ExtractedShop{
			Identifier: source.Match(clientID, href),
			RawName:    name,
		}
		if website := source.Resolve(doc, s.baseURL, href); website != "" {
			shop.WebsiteURL = &website
		}
		shops = append(shops, shop)
	})

	return shops, s.next(doc)
}

func (s *Source) Listings(doc *goquery.Document) ([]domain.ExtractedListing, string) {
	var listings []domain.ExtractedListing
	doc.Find("li.type_bike, li.type_bike_sp").Each(func(_ int, bike *goquery.Selection) {
		link := bike.Find(".c-search_block_title a, .c-search_block_title02 a").First()
		url := source.Resolve(doc, s.baseURL, link.AttrOr("href", ""))
		if url == "" {
			return
		}

		listing := domain.ExtractedListing{
			SourceURL: url,
			Title:     source.Text(link),
		}

		bike.Find(".c-search_block_price").Each(func(_ int, price *goquery.Selection) {
			label := source.Text(price.Find(".c-search_block_price_title"))
			value := source.ManYen(source.Text(price.Find(".c-search_block_price_text")))
			switch {
			case strings.Contains(label, "本体価格"):
				listing.Price = value
			case strings.Contains(label, "支払総額"):
				listing.TotalPrice = value
			}
		})

		bike.Find(".c-search_status_col").Each(func(_ int, col *goquery.Selection) {
			head := source.Text(col.Find(".c-search_status_head"))
			value := source.Text(col.Find(".c-search_status_title01"))
			switch {
			case strings.Contains(head, "モデル年") && !strings.Contains(value, "不明"):
				listing.ModelYear = source.Year(value)
			case strings.Contains(head, "距離"):
				listing.Mileage = source.Int(value)
			}
		})

		figure := bike.Find(".c-bike_image figure.c-img_cover").First()
		src := figure.AttrOr("data-src", "")
		if src == "" {
			src = figure.AttrOr("src", "")
		}
		if src != "" && !strings.Contains(src, "blank") {
			listing.ImageURLs = []string{source.Resolve(doc, s.baseURL, src)}
		}

		shop := bike.Find(".c-search_block_bottom_lead a").First()
		listing.ShopIdentifier = source.Match(clientID, shop.AttrOr("href", ""))
		listing.ShopName = source.Text(shop)

		listings = append(listings, listing)
	})

	return listings, s.next(doc)
}

func (s *Source) next(doc *goquery.Document) string {
	return source.Resolve(doc, s.baseURL, doc.Find("div.c-pager a.c-btn_next").First().AttrOr("href", ""))
}
