package model

import (
	"errors"
	"strings"
)

// Region is one of the seventeen first-level administrative divisions.
type Region string

const (
	RegionSeoul     Region = "서울"
	RegionBusan     Region = "부산"
	RegionDaegu     Region = "대구"
	RegionIncheon   Region = "인천"
	RegionGwangju   Region = "광주"
	RegionDaejeon   Region = "대전"
	RegionUlsan     Region = "울산"
	RegionSejong    Region = "세종"
	RegionGyeonggi  Region = "경기"
	RegionGangwon   Region = "강원"
	RegionChungbuk  Region = "충북"
	RegionChungnam  Region = "충남"
	RegionJeonbuk   Region = "전북"
	RegionJeonnam   Region = "전남"
	RegionGyeongbuk Region = "경북"
	RegionGyeongnam Region = "경남"
	RegionJeju      Region = "제주"
)

var ErrInvalidRegion = errors.New("invalid region")

// Regions lists every valid region in display order.
var Regions = []Region{
	RegionSeoul, RegionBusan, RegionDaegu, RegionIncheon, RegionGwangju, RegionDaejeon,
	RegionUlsan, RegionSejong, RegionGyeonggi, RegionGangwon, RegionChungbuk, RegionChungnam,
	RegionJeonbuk, RegionJeonnam, RegionGyeongbuk, RegionGyeongnam, RegionJeju,
}

func (r Region) Valid() bool {
	for _, v := range Regions {
		if r == v {
			return true
		}
	}
	return false
}

func (r Region) String() string { return string(r) }

func ParseRegion(s string) (Region, error) {
	r := Region(strings.TrimSpace(s))
	if !r.Valid() {
		return "", ErrInvalidRegion
	}
	return r, nil
}
