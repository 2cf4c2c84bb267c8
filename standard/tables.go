package standard

// hexnutDims is one EN ISO 4032 hexagon nut row: nominal thread diameter,
// width across flats, height.
type hexnutDims struct {
	d, w, h float64
}

// standardHexnuts lists the preferred and non-preferred EN ISO 4032 sizes.
var standardHexnuts = []hexnutDims{
	{1.6, 3.2, 1.3},
	{2, 4, 1.6},
	{2.5, 5, 2},
	{3, 5.5, 2.4},
	{3.5, 6, 2.8},
	{4, 7, 3.2},
	{5, 8, 4.7},
	{6, 10, 5.2},
	{8, 13, 6.8},
	{10, 16, 8.4},
	{12, 18, 10.8},
	{14, 21, 12.8},
	{16, 24, 14.8},
	{18, 27, 15.8},
	{20, 30, 18},
	{22, 34, 19.4},
	{24, 36, 21.5},
	{27, 41, 23.8},
	{30, 46, 25.6},
	{33, 50, 38.7},
	{36, 55, 31},
	{39, 60, 33.4},
	{42, 65, 34},
	{45, 70, 36},
	{48, 75, 38},
	{52, 80, 42},
	{56, 85, 45},
	{60, 90, 48},
	{64, 95, 51},
}

// washerDims is one ISO 7089 flat washer row: nominal screw diameter,
// interior diameter, exterior diameter, thickness.
type washerDims struct {
	nominal, interior, exterior, thickness float64
}

// standardWashers lists the ISO 7089 metric flat washer sizes.
var standardWashers = []washerDims{
	{1.6, 1.7, 4, 0.3},
	{2, 2.2, 5, 0.3},
	{2.5, 2.7, 6, 0.5},
	{2.6, 2.8, 7, 0.5},
	{3, 3.2, 7, 0.5},
	{3.5, 3.7, 8, 0.5},
	{4, 4.3, 9, 0.8},
	{5, 5.3, 10, 1},
	{6, 6.4, 12, 1.6},
	{7, 7.4, 14, 1.6},
	{8, 8.4, 16, 1.6},
	{10, 10.5, 20, 2},
	{12, 13, 24, 2.5},
	{14, 15, 28, 2.5},
	{16, 17, 30, 3},
	{18, 19, 34, 3},
	{20, 21, 37, 3},
	{22, 23, 39, 3},
	{24, 25, 44, 4},
	{27, 28, 50, 4},
	{30, 31, 56, 4},
	{33, 34, 60, 5},
	{36, 37, 66, 5},
	{39, 40, 72, 6},
	{42, 43, 78, 7},
	{45, 46, 85, 7},
	{48, 50, 92, 8},
	{52, 54, 98, 8},
	{56, 58, 105, 9},
}
