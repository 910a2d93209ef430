package model

// Project 查验项目
type Project struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Building string `json:"building,omitempty"` // 楼栋
	Unit     string `json:"unit,omitempty"`     // 单元
	Remark   string `json:"remark,omitempty"`
}

// Template 查验模板：有序检查项
type Template struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// Clone 深拷贝
func (t Template) Clone() Template {
	t.Items = append([]string{}, t.Items...)
	return t
}

// DefaultTemplates 预置查验模板
func DefaultTemplates() []Template {
	return []Template{
		{
			ID:   "waterproof",
			Name: "防水工程",
			Items: []string{
				"卫生间、阳台、厨房防水施工完成且闭水试验通过",
				"墙/地面无空鼓、开裂、起砂、渗漏",
				"地漏及泛水坡度正确，无倒坡",
				"管根、阴阳角、套管处附加层完整",
				"防水层上翻高度符合规范",
			},
		},
		{
			ID:   "electrical",
			Name: "电气工程",
			Items: []string{
				"配电箱固定牢靠，回路标识清晰",
				"导线规格/颜色/敷设规范，穿管无破损",
				"插座接地/接零正确，极性正确",
				"开关、插座、灯具安装牢固、位置正确",
				"弱电箱、入户信息端口标注清楚",
			},
		},
		{
			ID:   "fire",
			Name: "消防/安防",
			Items: []string{
				"公共区域灭火器配置齐全、在有效期内",
				"消火栓、水泵接合器外观完好、标识清晰",
				"消防门闭门器灵活、常闭，合页无异响",
				"应急照明、疏散指示灯通电正常",
				"消防管道无渗漏，支吊架间距符合要求",
			},
		},
		{
			ID:   "plumbing",
			Name: "给排水/暖通",
			Items: []string{
				"供水、回水管道无渗漏，阀门启闭灵活",
				"排水通畅，存水弯设置正确",
				"暖通风口安装牢固、风量基本达标",
				"设备基础减振、冷凝水排放顺畅",
				"水表、热量表安装方向正确、可读性好",
			},
		},
		{
			ID:   "finishing",
			Name: "精装/公区装饰",
			Items: []string{
				"墙地砖空鼓率符合要求，勾缝均匀",
				"乳胶漆表面平整、无流坠、无明显色差",
				"门窗安装牢固、开启灵活、密封良好",
				"栏杆扶手牢固、缝隙间距合规",
				"吊顶造型顺直，检修口位置合理",
			},
		},
	}
}
