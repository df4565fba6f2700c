package db

func rank(n int) *int { return &n }

// defaultBabyNames is the embedded seed catalog. Rank is the static
// popularity position within a gender list; unisex names carry no rank.
var defaultBabyNames = []BabyName{
	// Boys
	{ID: "liam", Name: "Liam", Gender: GenderBoy, Origin: "Irish", Meaning: `"Strong-willed warrior and protector". Modern and strong name.`, Rank: rank(1), Category: "Modern"},
	{ID: "noah", Name: "Noah", Gender: GenderBoy, Origin: "Hebrew", Meaning: `"Rest" or "comfort". Biblical name with peaceful meaning.`, Rank: rank(2), Category: "Traditional"},
	{ID: "oliver", Name: "Oliver", Gender: GenderBoy, Origin: "Latin", Meaning: `"Olive tree". Symbol of peace and fruitfulness.`, Rank: rank(3), Category: "Classic"},
	{ID: "theodore", Name: "Theodore", Gender: GenderBoy, Origin: "Greek", Meaning: `"Gift of God". Classic name experiencing renaissance.`, Rank: rank(4), Category: "Classic"},
	{ID: "henry", Name: "Henry", Gender: GenderBoy, Origin: "Germanic", Meaning: `"Estate ruler". Classic name with royal heritage.`, Rank: rank(5), Category: "Traditional"},
	{ID: "james", Name: "James", Gender: GenderBoy, Origin: "Hebrew", Meaning: `"Supplanter". Classic name with enduring popularity.`, Rank: rank(6), Category: "Traditional"},
	{ID: "mateo", Name: "Mateo", Gender: GenderBoy, Origin: "Spanish", Meaning: `"Gift of God". Rising international name.`, Rank: rank(7), Category: "Modern"},
	{ID: "luca", Name: "Luca", Gender: GenderBoy, Origin: "Italian", Meaning: `"Light" or "illumination". Short and strong modern choice.`, Rank: rank(8), Category: "Modern"},
	{ID: "benjamin", Name: "Benjamin", Gender: GenderBoy, Origin: "Hebrew", Meaning: `"Son of the right hand". Biblical name with modern appeal.`, Rank: rank(9), Category: "Traditional"},
	{ID: "theo", Name: "Theo", Gender: GenderBoy, Origin: "Greek", Meaning: `"God". Short and sweet modern choice.`, Rank: rank(10), Category: "Modern"},
	{ID: "ethan", Name: "Ethan", Gender: GenderBoy, Origin: "Hebrew", Meaning: `"Firm" or "steadfast". Strong and reliable name.`, Rank: rank(11), Category: "Traditional"},
	{ID: "william", Name: "William", Gender: GenderBoy, Origin: "Germanic", Meaning: `"Resolute protector". Timeless royal name.`, Rank: rank(12), Category: "Traditional"},
	{ID: "lucas", Name: "Lucas", Gender: GenderBoy, Origin: "Latin", Meaning: `"Light" or "illumination". Bright and modern name.`, Rank: rank(13), Category: "Modern"},
	{ID: "alexander", Name: "Alexander", Gender: GenderBoy, Origin: "Greek", Meaning: `"Defender of men". Strong historical name.`, Rank: rank(14), Category: "Classic"},
	{ID: "felix", Name: "Felix", Gender: GenderBoy, Origin: "Latin", Meaning: `"Happy" or "fortunate". Cheerful classic name.`, Rank: rank(15), Category: "Classic"},
	{ID: "leo", Name: "Leo", Gender: GenderBoy, Origin: "Latin", Meaning: `"Lion". Strong and regal name.`, Rank: rank(16), Category: "Classic"},
	{ID: "arlo", Name: "Arlo", Gender: GenderBoy, Origin: "Germanic", Meaning: `"Fortified hill". Trendy vintage choice.`, Rank: rank(17), Category: "Modern"},
	{ID: "atlas", Name: "Atlas", Gender: GenderBoy, Origin: "Greek", Meaning: `"To endure". Strong mythological name.`, Rank: rank(18), Category: "Modern"},
	{ID: "kai", Name: "Kai", Gender: GenderBoy, Origin: "Hawaiian", Meaning: `"Ocean". Short international name.`, Rank: rank(19), Category: "Modern"},
	{ID: "sebastian", Name: "Sebastian", Gender: GenderBoy, Origin: "Greek", Meaning: `"Venerable" or "revered". Sophisticated classic.`, Rank: rank(20), Category: "Classic"},

	// Girls
	{ID: "olivia", Name: "Olivia", Gender: GenderGirl, Origin: "Latin", Meaning: `"Olive tree". Graceful classic at the top of the charts.`, Rank: rank(1), Category: "Classic"},
	{ID: "emma", Name: "Emma", Gender: GenderGirl, Origin: "Germanic", Meaning: `"Whole" or "universal". A classic name that has remained popular for centuries.`, Rank: rank(2), Category: "Traditional"},
	{ID: "amelia", Name: "Amelia", Gender: GenderGirl, Origin: "Germanic", Meaning: `"Work" or "industrious". Strong and feminine name.`, Rank: rank(3), Category: "Classic"},
	{ID: "charlotte", Name: "Charlotte", Gender: GenderGirl, Origin: "French", Meaning: `"Free man". Elegant name with royal connections.`, Rank: rank(4), Category: "Classic"},
	{ID: "sophia", Name: "Sophia", Gender: GenderGirl, Origin: "Greek", Meaning: `"Wisdom". Elegant and timeless name with classical roots.`, Rank: rank(5), Category: "Classic"},
	{ID: "ava", Name: "Ava", Gender: GenderGirl, Origin: "Latin", Meaning: `"Life" or "bird". Short and sweet with timeless appeal.`, Rank: rank(6), Category: "Modern"},
	{ID: "mia", Name: "Mia", Gender: GenderGirl, Origin: "Scandinavian", Meaning: `"Mine" or "bitter". Short and sweet modern name.`, Rank: rank(7), Category: "Modern"},
	{ID: "isabella", Name: "Isabella", Gender: GenderGirl, Origin: "Hebrew", Meaning: `"God is my oath". Elegant and sophisticated name.`, Rank: rank(8), Category: "Classic"},
	{ID: "evelyn", Name: "Evelyn", Gender: GenderGirl, Origin: "English", Meaning: `"Wished for child". Vintage name making a comeback.`, Rank: rank(9), Category: "Classic"},
	{ID: "luna", Name: "Luna", Gender: GenderGirl, Origin: "Latin", Meaning: `"Moon". Celestial name with modern shine.`, Rank: rank(10), Category: "Modern"},
	{ID: "harper", Name: "Harper", Gender: GenderGirl, Origin: "English", Meaning: `"Harp player". Modern occupational name.`, Rank: rank(11), Category: "Modern"},
	{ID: "aurora", Name: "Aurora", Gender: GenderGirl, Origin: "Latin", Meaning: `"Dawn". Romantic name from Roman mythology.`, Rank: rank(12), Category: "Classic"},
	{ID: "abigail", Name: "Abigail", Gender: GenderGirl, Origin: "Hebrew", Meaning: `"Father's joy". Traditional name with modern appeal.`, Rank: rank(13), Category: "Traditional"},
	{ID: "hazel", Name: "Hazel", Gender: GenderGirl, Origin: "English", Meaning: `"The hazel tree". Nature name with vintage warmth.`, Rank: rank(14), Category: "Modern"},
	{ID: "ivy", Name: "Ivy", Gender: GenderGirl, Origin: "English", Meaning: `"Faithfulness". Evergreen botanical name.`, Rank: rank(15), Category: "Modern"},
	{ID: "nora", Name: "Nora", Gender: GenderGirl, Origin: "Irish", Meaning: `"Honor" or "light". Short vintage favourite.`, Rank: rank(16), Category: "Classic"},
	{ID: "lily", Name: "Lily", Gender: GenderGirl, Origin: "English", Meaning: `"Purity". Delicate floral name.`, Rank: rank(17), Category: "Traditional"},
	{ID: "stella", Name: "Stella", Gender: GenderGirl, Origin: "Latin", Meaning: `"Star". Bright name with retro charm.`, Rank: rank(18), Category: "Modern"},
	{ID: "clara", Name: "Clara", Gender: GenderGirl, Origin: "Latin", Meaning: `"Bright" or "clear". Graceful old-fashioned name.`, Rank: rank(19), Category: "Classic"},
	{ID: "violet", Name: "Violet", Gender: GenderGirl, Origin: "Latin", Meaning: `"Purple flower". Color and botanical name in one.`, Rank: rank(20), Category: "Classic"},

	// Unisex, included in both boy and girl filters
	{ID: "river", Name: "River", Gender: GenderUnisex, Origin: "English", Meaning: `"Flowing body of water". Free-spirited nature name.`, Category: "Modern"},
	{ID: "rowan", Name: "Rowan", Gender: GenderUnisex, Origin: "Irish", Meaning: `"Little red one". Tree name with Celtic roots.`, Category: "Modern"},
	{ID: "quinn", Name: "Quinn", Gender: GenderUnisex, Origin: "Irish", Meaning: `"Descendant of Conn". Sharp single-syllable surname name.`, Category: "Modern"},
	{ID: "sage", Name: "Sage", Gender: GenderUnisex, Origin: "Latin", Meaning: `"Wise". Herb name with a calm sound.`, Category: "Modern"},
	{ID: "avery", Name: "Avery", Gender: GenderUnisex, Origin: "English", Meaning: `"Ruler of the elves". Soft-sounding medieval name.`, Category: "Modern"},
	{ID: "charlie", Name: "Charlie", Gender: GenderUnisex, Origin: "English", Meaning: `"Free man". Friendly diminutive that stands alone.`, Category: "Traditional"},
	{ID: "emerson", Name: "Emerson", Gender: GenderUnisex, Origin: "Germanic", Meaning: `"Son of Emery". Literary surname name.`, Category: "Modern"},
	{ID: "phoenix", Name: "Phoenix", Gender: GenderUnisex, Origin: "Greek", Meaning: `"Dark red". Mythical bird of rebirth.`, Category: "Modern"},
}

// DefaultCatalog returns a copy of the embedded seed catalog.
func DefaultCatalog() []BabyName {
	out := make([]BabyName, len(defaultBabyNames))
	copy(out, defaultBabyNames)
	return out
}
