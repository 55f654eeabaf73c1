package resolver

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"motohub/internal/domain"
	"motohub/internal/resolver/mocks"
)

type ResolverTestSuite struct {
	suite.Suite

	catalog  *memCatalog
	stores   Stores
	resolver *Resolver
	logger   *slog.Logger
}

func (s *ResolverTestSuite) SetupTest() {
	s.catalog = newMemCatalog()
	s.stores = s.catalog.stores()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.resolver = New(s.stores, NewIdentifierCache(), NewIdentifierCache(), s.logger)
}

func TestResolverTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func (s *ResolverTestSuite) TestResolveModel_RepeatReturnsSameID() {
	ctx := context.Background()

	first, err := s.resolver.ResolveModel(ctx, 1, "mdl-100", "CB400SF (7台)", 10)
	s.Require().NoError(err)

	second, err := s.resolver.ResolveModel(ctx, 1, "mdl-100", "CB400SF (7台)", 10)
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal(1, s.catalog.modelCount())
	s.Equal(1, s.catalog.modelInserts)

	model := s.catalog.models["CB400SF"]
	s.Equal("CB400SF", model.Name)
	s.Equal(int64(10), model.ManufacturerID)
	s.Require().NotNil(model.Category)
	s.Equal(domain.UnknownCategory, *model.Category)
	s.Nil(model.Displacement)
}

func (s *ResolverTestSuite) TestResolveModel_NameMatchAcrossSites() {
	ctx := context.Background()

	goobike, err := s.resolver.ResolveModel(ctx, 1, "g-1", "ＣＢ１２５Ｒ", 10)
	s.Require().NoError(err)

	bds, err := s.resolver.ResolveModel(ctx, 2, "b-77", "CB125R（新車）", 10)
	s.Require().NoError(err)

	s.Equal(goobike, bds)
	s.Equal(1, s.catalog.modelCount())

	mapped, ok, err := s.resolver.LookupModel(ctx, 2, "b-77")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(goobike, mapped)
}

func (s *ResolverTestSuite) TestResolveModel_ConcurrentSameNameCreatesOneRow() {
	ctx := context.Background()
	s.catalog.modelLookup = newBarrier(2).wait

	ids := make([]int64, 2)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, identifier := range []string{"mdl-1", "mdl-2"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i], errs[i] = s.resolver.ResolveModel(ctx, 1, identifier, "Z900RS", 20)
		}()
	}
	wg.Wait()

	s.Require().NoError(errs[0])
	s.Require().NoError(errs[1])
	s.Equal(ids[0], ids[1])
	s.Equal(1, s.catalog.modelCount())
	s.Equal(2, s.catalog.modelInserts)

	for _, identifier := range []string{"mdl-1", "mdl-2"} {
		mapped, err := s.stores.ModelIdentifiers.Get(ctx, 1, identifier)
		s.Require().NoError(err)
		s.Equal(ids[0], mapped)
	}
}

func (s *ResolverTestSuite) TestResolveModel_ManyWorkers() {
	ctx := context.Background()

	const workers = 16
	ids := make([]int64, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.resolver.ResolveModel(ctx, 1, "mdl-shared", "MT-09", 30)
			s.NoError(err)
			ids[i] = id
		}()
	}
	wg.Wait()

	for _, id := range ids {
		s.Equal(ids[0], id)
	}
	s.Equal(1, s.catalog.modelCount())
}

func (s *ResolverTestSuite) TestResolveModel_EmptyName() {
	_, err := s.resolver.ResolveModel(context.Background(), 1, "mdl-x", "  (3台) ", 1)
	s.ErrorIs(err, ErrEmptyName)
	s.Equal(0, s.catalog.modelCount())
}

func (s *ResolverTestSuite) TestWarm_UsesStoredMappings() {
	ctx := context.Background()

	id, err := s.resolver.ResolveModel(ctx, 1, "mdl-5", "PCX", 1)
	s.Require().NoError(err)

	identifiers := s.stores.ModelIdentifiers.(*memIdentifiers)
	fresh := New(s.stores, NewIdentifierCache(), NewIdentifierCache(), s.logger)
	s.Require().NoError(fresh.Warm(ctx, 1))

	gets := identifiers.gets
	got, ok, err := fresh.LookupModel(ctx, 1, "mdl-5")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(id, got)
	s.Equal(gets, identifiers.gets)
}

func (s *ResolverTestSuite) TestResolveManufacturer() {
	ctx := context.Background()
	japan := "日本"

	first, err := s.resolver.ResolveManufacturer(ctx, "ホンダ", &japan)
	s.Require().NoError(err)

	second, err := s.resolver.ResolveManufacturer(ctx, "ホンダ (125台)", nil)
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Len(s.catalog.manufacturers, 1)

	_, err = s.resolver.ResolveManufacturer(ctx, "", nil)
	s.ErrorIs(err, ErrEmptyName)
}

func (s *ResolverTestSuite) TestResolveShop_AddressVariantsMerge() {
	ctx := context.Background()

	first, err := s.resolver.ResolveShop(ctx, 1, domain.ExtractedShop{
		Identifier: "shop-1",
		RawName:    "Red Baron Shibuya",
		RawAddress: "Shibuya 1-1-7",
	}, "東京都")
	s.Require().NoError(err)

	second, err := s.resolver.ResolveShop(ctx, 2, domain.ExtractedShop{
		Identifier: "9001",
		RawName:    "RED BARON SHIBUYA",
		RawAddress: "Shibuya 1-chome-1-7",
	}, "東京都")
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal(1, s.catalog.shopCount())
}

func (s *ResolverTestSuite) TestResolveShop_AddressContainment() {
	ctx := context.Background()

	first, err := s.resolver.ResolveShop(ctx, 1, domain.ExtractedShop{
		RawName:    "バイク王 渋谷店",
		RawAddress: "東京都渋谷区1丁目1番7号 モトビル2F",
	}, "東京都")
	s.Require().NoError(err)

	second, err := s.resolver.ResolveShop(ctx, 2, domain.ExtractedShop{
		RawName:    "バイク王　渋谷店",
		RawAddress: "東京都渋谷区１－１－７",
	}, "東京都")
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal(1, s.catalog.shopCount())
}

func (s *ResolverTestSuite) TestResolveShop_DifferentAddressCreatesShop() {
	ctx := context.Background()

	first, err := s.resolver.ResolveShop(ctx, 1, domain.ExtractedShop{
		RawName:    "バイク王",
		RawAddress: "東京都渋谷区1-1-7",
	}, "東京都")
	s.Require().NoError(err)

	second, err := s.resolver.ResolveShop(ctx, 1, domain.ExtractedShop{
		RawName:    "バイク王",
		RawAddress: "大阪府大阪市北区梅田3-1",
	}, "大阪府")
	s.Require().NoError(err)

	s.NotEqual(first, second)
	s.Equal(2, s.catalog.shopCount())
}

func (s *ResolverTestSuite) TestResolveShop_MissingAddressMatchesByName() {
	ctx := context.Background()

	first, err := s.resolver.ResolveShop(ctx, 1, domain.ExtractedShop{
		RawName:    "モトショップ北",
		RawAddress: "北海道札幌市北区5-2",
	}, "北海道")
	s.Require().NoError(err)

	second, err := s.resolver.ResolveShop(ctx, 2, domain.ExtractedShop{
		Identifier: "42",
		RawName:    "モトショップ北",
	}, "北海道")
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal(1, s.catalog.shopCount())
}

func (s *ResolverTestSuite) TestResolveShop_AddressRaceRereads() {
	ctx := context.Background()
	key := "東京都港区2-3-4"
	existing, err := memShops{s.catalog}.Insert(ctx, &domain.Shop{
		Name:       "Other Name",
		NameKey:    "OTHER NAME",
		AddressKey: &key,
	})
	s.Require().NoError(err)

	id, err := s.resolver.ResolveShop(ctx, 1, domain.ExtractedShop{
		Identifier: "s-3",
		RawName:    "Minato Motors",
		RawAddress: "東京都港区2丁目3番4号",
	}, "東京都")
	s.Require().NoError(err)

	s.Equal(existing, id)
	s.Equal(1, s.catalog.shopCount())

	mapped, err := s.stores.ShopIdentifiers.Get(ctx, 1, "s-3")
	s.Require().NoError(err)
	s.Equal(existing, mapped)
}

func (s *ResolverTestSuite) TestResolveShop_ConcurrentSameShop() {
	ctx := context.Background()

	const workers = 8
	ids := make([]int64, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.resolver.ResolveShop(ctx, 1, domain.ExtractedShop{
				RawName: "Bike Garage",
			}, "")
			s.NoError(err)
			ids[i] = id
		}()
	}
	wg.Wait()

	for _, id := range ids {
		s.Equal(ids[0], id)
	}
	s.Equal(1, s.catalog.shopCount())
}

func (s *ResolverTestSuite) TestFindShop_NeverCreates() {
	ctx := context.Background()

	_, ok, err := s.resolver.FindShop(ctx, 1, "", "Unknown Shop", "Nowhere 1-1")
	s.Require().NoError(err)
	s.False(ok)
	s.Equal(0, s.catalog.shopCount())

	id, err := s.resolver.ResolveShop(ctx, 1, domain.ExtractedShop{
		Identifier: "s-9",
		RawName:    "Known Shop",
		RawAddress: "Shinjuku 3-1",
	}, "")
	s.Require().NoError(err)

	found, ok, err := s.resolver.FindShop(ctx, 1, "s-9", "", "")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(id, found)

	found, ok, err = s.resolver.FindShop(ctx, 2, "", "KNOWN SHOP", "Shinjuku 3-chome-1 2F")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(id, found)
}

type ResolverMockTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	manufacturers    *mocks.MockManufacturerStore
	models           *mocks.MockModelStore
	shops            *mocks.MockShopStore
	modelIdentifiers *mocks.MockIdentifierStore
	shopIdentifiers  *mocks.MockIdentifierStore

	resolver *Resolver
}

func (s *ResolverMockTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.manufacturers = mocks.NewMockManufacturerStore(s.ctrl)
	s.models = mocks.NewMockModelStore(s.ctrl)
	s.shops = mocks.NewMockShopStore(s.ctrl)
	s.modelIdentifiers = mocks.NewMockIdentifierStore(s.ctrl)
	s.shopIdentifiers = mocks.NewMockIdentifierStore(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.resolver = New(Stores{
		Manufacturers:    s.manufacturers,
		Models:           s.models,
		Shops:            s.shops,
		ModelIdentifiers: s.modelIdentifiers,
		ShopIdentifiers:  s.shopIdentifiers,
	}, NewIdentifierCache(), NewIdentifierCache(), logger)
}

func (s *ResolverMockTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestResolverMockTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverMockTestSuite))
}

func (s *ResolverMockTestSuite) TestResolveModel_LoserRereadsWinner() {
	ctx := context.Background()

	gomock.InOrder(
		s.modelIdentifiers.EXPECT().Get(ctx, int64(1), "mdl-1").Return(int64(0), domain.ErrNotFound),
		s.models.EXPECT().GetByNameKey(ctx, "NINJA 400").Return(nil, domain.ErrNotFound),
		s.models.EXPECT().Insert(ctx, gomock.Any()).Return(int64(0), domain.ErrUniqueViolation),
		s.models.EXPECT().GetByNameKey(ctx, "NINJA 400").Return(&domain.BikeModel{ID: 55, NameKey: "NINJA 400"}, nil),
		s.modelIdentifiers.EXPECT().Attach(ctx, int64(1), "mdl-1", int64(55)).Return(int64(55), nil),
	)

	id, err := s.resolver.ResolveModel(ctx, 1, "mdl-1", "Ninja 400", 3)

	s.NoError(err)
	s.Equal(int64(55), id)
}

func (s *ResolverMockTestSuite) TestResolveModel_StorageErrorPropagates() {
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	s.modelIdentifiers.EXPECT().Get(ctx, int64(1), "mdl-1").Return(int64(0), dbErr)

	_, err := s.resolver.ResolveModel(ctx, 1, "mdl-1", "Ninja 400", 3)

	s.ErrorIs(err, dbErr)
}

func (s *ResolverMockTestSuite) TestResolveModel_InsertErrorPropagates() {
	ctx := context.Background()
	dbErr := errors.New("disk full")

	s.modelIdentifiers.EXPECT().Get(ctx, int64(1), "mdl-1").Return(int64(0), domain.ErrNotFound)
	s.models.EXPECT().GetByNameKey(ctx, "NINJA 400").Return(nil, domain.ErrNotFound)
	s.models.EXPECT().Insert(ctx, gomock.Any()).Return(int64(0), dbErr)

	_, err := s.resolver.ResolveModel(ctx, 1, "mdl-1", "Ninja 400", 3)

	s.ErrorIs(err, dbErr)
	s.NotErrorIs(err, domain.ErrUniqueViolation)
}

func (s *ResolverMockTestSuite) TestResolveModel_AttachReturnsExistingMapping() {
	ctx := context.Background()

	s.modelIdentifiers.EXPECT().Get(ctx, int64(1), "mdl-1").Return(int64(0), domain.ErrNotFound)
	s.models.EXPECT().GetByNameKey(ctx, "NINJA 400").Return(&domain.BikeModel{ID: 7}, nil)
	s.modelIdentifiers.EXPECT().Attach(ctx, int64(1), "mdl-1", int64(7)).Return(int64(9), nil)

	id, err := s.resolver.ResolveModel(ctx, 1, "mdl-1", "Ninja 400", 3)
	s.Require().NoError(err)
	s.Equal(int64(9), id)

	// served from the cache
	id, err = s.resolver.ResolveModel(ctx, 1, "mdl-1", "Ninja 400", 3)
	s.Require().NoError(err)
	s.Equal(int64(9), id)
}

func (s *ResolverMockTestSuite) TestWarm_ListError() {
	ctx := context.Background()
	dbErr := errors.New("timeout")

	s.modelIdentifiers.EXPECT().ListBySite(ctx, int64(2)).Return(nil, dbErr)

	s.ErrorIs(s.resolver.Warm(ctx, 2), dbErr)
}

func (s *ResolverMockTestSuite) TestResolveShop_InsertsWithKeys() {
	ctx := context.Background()
	phone := "03-0000-0000"

	s.shopIdentifiers.EXPECT().Get(ctx, int64(1), "77").Return(int64(0), domain.ErrNotFound)
	s.shops.EXPECT().ListByNameKey(ctx, "MOTO PLAZA").Return(nil, nil)
	s.shops.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, shop *domain.Shop) (int64, error) {
			s.Equal("Moto Plaza", shop.Name)
			s.Require().NotNil(shop.AddressKey)
			s.Equal("東京都新宿区3-1", *shop.AddressKey)
			s.Require().NotNil(shop.Prefecture)
			s.Equal("東京都", *shop.Prefecture)
			s.Equal(&phone, shop.Phone)
			return 31, nil
		},
	)
	s.shopIdentifiers.EXPECT().Attach(ctx, int64(1), "77", int64(31)).Return(int64(31), nil)

	id, err := s.resolver.ResolveShop(ctx, 1, domain.ExtractedShop{
		Identifier: "77",
		RawName:    "Moto Plaza",
		RawAddress: "東京都新宿区3丁目1番",
		Phone:      &phone,
	}, "東京都")

	s.NoError(err)
	s.Equal(int64(31), id)
}
