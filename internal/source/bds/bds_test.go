package bds

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motohub/internal/testutil"
)

func mustLoad(t *testing.T, name string) *goquery.Document {
	t.Helper()

	file, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	defer file.Close()

	doc, err := goquery.NewDocumentFromReader(file)
	require.NoError(t, err)
	doc.Url, _ = url.Parse(BaseURL + "/bike/maker/honda")
	return doc
}

func TestMakers(t *testing.T) {
	makers, err := New().Makers(context.Background(), nil)
	require.NoError(t, err)

	assert.Len(t, makers, 55)
	assert.Equal(t, "ホンダ", makers[0].Name)
	assert.Equal(t, BaseURL+"/bike/maker/honda", makers[0].URL)
	assert.Nil(t, makers[0].Country)
	assert.Equal(t, BaseURL+"/bike/maker/mutt", makers[len(makers)-1].URL)
}

func TestRegions(t *testing.T) {
	regions, err := New().Regions(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, regions, 47)
	assert.Equal(t, "北海道", regions[0].Name)
	assert.Equal(t, BaseURL+"/shop?prefectureCodes%5B%5D=01", regions[0].URL)
	assert.Equal(t, "東京都", regions[12].Name)
	assert.Equal(t, BaseURL+"/shop?prefectureCodes%5B%5D=13", regions[12].URL)
	assert.Equal(t, BaseURL+"/shop?prefectureCodes%5B%5D=47", regions[46].URL)
}

func TestModels(t *testing.T) {
	models := New().Models(mustLoad(t, "maker_honda.html"))
	require.Len(t, models, 2)

	assert.Equal(t, "m1234", models[0].Identifier)
	assert.Equal(t, "CB400SF", models[0].RawName)
	assert.Equal(t, BaseURL+"/bike/maker/honda/m1234", models[0].ListingURL)

	assert.Equal(t, "m5678", models[1].Identifier)
	assert.Equal(t, "スーパーカブ110", models[1].RawName)
}

func TestShops(t *testing.T) {
	shops, next := New().Shops(mustLoad(t, "shops.html"))

	assert.Equal(t, BaseURL+"/shop?prefectureCodes%5B%5D=01&page=3", next)
	require.Len(t, shops, 2)

	assert.Equal(t, "50123", shops[0].Identifier)
	assert.Equal(t, "モトショップ北", shops[0].RawName)
	assert.Empty(t, shops[0].RawAddress)

	assert.Empty(t, shops[1].Identifier)
	assert.Equal(t, "名無し商会", shops[1].RawName)
}

func TestListings(t *testing.T) {
	listings, next := New().Listings(mustLoad(t, "listings.html"))

	assert.Empty(t, next)
	require.Len(t, listings, 2)

	first := listings[0]
	assert.Equal(t, BaseURL+"/bike/detail/A1", first.SourceURL)
	assert.Equal(t, "CB400SF Revo", first.Title)
	assert.Equal(t, testutil.Ptr(int64(628000)), first.Price)
	assert.Equal(t, testutil.Ptr(int64(10680000)), first.TotalPrice)
	assert.Equal(t, testutil.Ptr(2020), first.ModelYear)
	assert.Equal(t, testutil.Ptr(3210), first.Mileage)
	assert.Equal(t, []string{"https://img.bds.test/A1.jpg"}, first.ImageURLs)
	assert.Equal(t, "50123", first.ShopIdentifier)
	assert.Equal(t, "モトショップ北", first.ShopName)

	second := listings[1]
	assert.Equal(t, BaseURL+"/bike/detail/B2", second.SourceURL)
	assert.Nil(t, second.Price)
	assert.Nil(t, second.ModelYear)
	assert.Empty(t, second.ImageURLs)
	assert.Empty(t, second.ShopName)
}

func TestCategories(t *testing.T) {
	targets, err := New().Categories(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, targets, 14)
	assert.Equal(t, "原付スクーター", targets[0].Name)
	assert.Equal(t, BaseURL+"/bike/type/gentsuki", targets[0].URL)
	assert.Equal(t, BaseURL+"/bike/type/other", targets[13].URL)
}

func TestCategoryModels(t *testing.T) {
	category, names := New().CategoryModels(mustLoad(t, "category.html"))

	assert.Empty(t, category)
	assert.Equal(t, []string{"CB400SF", "Z900RS"}, names)
}
