// SPDX-License-Identifier: EPL-2.0

package catalog

// Graph keys used to build the default playback graph.
const (
	KeyStreamRX   uint32 = 0xA1000000
	KeyDeviceRX   uint32 = 0xA2000000
	KeyInstance   uint32 = 0xAB000000
	KeyDevicePPRX uint32 = 0xAC000000
	KeyStreamPPRX uint32 = 0xAF000000
)

// Module tags resolved at runtime.
const (
	TagDeviceHWEndpointRX    uint32 = 0xC0000004
	TagPerStreamPerDeviceMFC uint32 = 0xC0000019
)

// Frequently used values.
const (
	StreamPCMLowLatencyPlayback uint32 = 0xA100000E
	DeviceSpeaker               uint32 = 0xA2000001
	Instance1                   uint32 = 1
	DevicePPAudioMBDRC          uint32 = 0xAC000002
	StreamPPDefault             uint32 = 0xAF000001
)

var (
	// KeyIDs lists every graph key type.
	KeyIDs = Table{name: "keys", entries: []Entry{
		{0xA1000000, "STREAMRX"},
		{0xA2000000, "DEVICERX"},
		{0xA3000000, "DEVICETX"},
		{0xA4000000, "VOLUME"},
		{0xA5000000, "SAMPLINGRATE"},
		{0xA6000000, "BITWIDTH"},
		{0xA7000000, "PAUSE"},
		{0xA8000000, "MUTE"},
		{0xA9000000, "CHANNELS"},
		{0xAA000000, "ECNS"},
		{0xAB000000, "INSTANCE"},
		{0xAC000000, "DEVICEPP_RX"},
		{0xAD000000, "DEVICEPP_TX"},
		{0xAE000000, "MEDIA_FMT_ID"},
		{0xAF000000, "STREAMPP_RX"},
		{0xB0000000, "STREAMPP_TX"},
		{0xB1000000, "STREAMTX"},
		{0xB2000000, "EQUALIZER_SWITCH"},
		{0xB3000000, "VSID"},
		{0xB4000000, "BT_PROFILE"},
		{0xB5000000, "BT_FORMAT"},
		{0xB6000000, "PBE_SWITCH"},
		{0xB7000000, "BASS_BOOST_SWITCH"},
		{0xB8000000, "REVERB_SWITCH"},
		{0xB9000000, "VIRTUALIZER_SWITCH"},
		{0xBA000000, "SW_SIDETONE"},
		{0xBB000000, "TAG_KEY_SLOW_TALK"},
		{0xBC000000, "STREAM_CONFIG"},
		{0xBD000000, "TAG_KEY_MUX_DEMUX_CONFIG"},
		{0xBE000000, "SPK_PRO_DEV_MAP"},
		{0xBF000000, "SPK_PRO_VI_MAP"},
		{0xD0000000, "RAS_SWITCH"},
		{0xD1000000, "PROXY_TX_TYPE"},
		{0xD2000000, "GAIN"},
		{0xD3000000, "STREAM"},
		{0xD4000000, "STREAM_CHANNELS"},
		{0xD5000000, "ICL"},
		{0xD6000000, "ASPHERE_SWITCH"},
		{0xD7000000, "DEVICETX_EXT"},
		{0xD8000000, "LOGGING"},
		{0xD9000000, "BMT"},
		{0xDA000000, "FNB"},
		{0xDB000000, "SUMX"},
		{0xDC000000, "AVC"},
		{0xDD000000, "VMI"},
		{0xDE000000, "TAG_KEY_DTMF_SWITCH"},
		{0xDF000000, "TAG_KEY_DTMF_GEN_TONE"},
		{0xE0000000, "TAG_KEY_SLOT_MASK"},
		{0xE1000000, "TAG_KEY_DUTY_CYCLE"},
		{0xE2000000, "TAG_KEY_ORIENTATION"},
		{0xE3000000, "SPK_PRO_CPS_MAP"},
		{0xE4000000, "HAPTICS_PRO_VI_MAP"},
		{0xE5000000, "HAPTICS_PRO_DEV_MAP"},
		{0xE6000000, "USB_VENDOR_ID"},
		{0xE7000000, "TAG_KEY_ULTRASOUND_GAIN"},
		{0xE7010000, "PROXY_RX_TYPE"},
	}}

	// Streams lists the playback stream usecases.
	Streams = Table{name: "stream", entries: []Entry{
		{0xA1000001, "PCM_DEEP_BUFFER"},
		{0xA1000003, "PCM_RX_LOOPBACK"},
		{0xA1000005, "VOIP_RX_PLAYBACK"},
		{0xA100000A, "COMPRESSED_OFFLOAD_PLAYBACK"},
		{0xA100000C, "HFP_RX_PLAYBACK"},
		{0xA100000D, "HFP_TX_PLAYBACK"},
		{0xA100000E, "PCM_LL_PLAYBACK"},
		{0xA100000F, "PCM_OFFLOAD_PLAYBACK"},
		{0xA1000010, "VOICE_CALL_RX"},
		{0xA1000011, "PCM_ULL_PLAYBACK"},
		{0xA1000012, "PCM_PROXY_PLAYBACK"},
		{0xA1000013, "INCALL_MUSIC"},
		{0xA1000014, "GENERIC_PLAYBACK"},
		{0xA1000015, "HAPTICS_PLAYBACK"},
		{0xA1000016, "VOICE_CALL_RX_HPCM_PLAYBACK"},
		{0xA1000017, "VOICE_CALL_TX_HPCM_PLAYBACK"},
		{0xA1000018, "SPATIAL_AUDIO_PLAYBACK"},
		{0xA1000019, "RAW_PLAYBACK"},
		{0xA100001A, "INCALL_MUSIC_PLUS"},
		{0xA100001B, "INCALL_MUSIC_COMPRESS_UPLINK"},
		{0xA100001C, "INCALL_MUSIC_COMPRESS_DOWNLINK"},
	}}

	// Devices lists the playback devices.
	Devices = Table{name: "device", entries: []Entry{
		{0xA2000001, "SPEAKER"},
		{0xA2000002, "HEADPHONES"},
		{0xA2000003, "BT_RX"},
		{0xA2000004, "HANDSET"},
		{0xA2000005, "USB_RX"},
		{0xA2000006, "HDMI_RX"},
		{0xA2000007, "PROXY_RX"},
		{0xA2000008, "PROXY_RX_VOICE"},
		{0xA2000009, "HAPTICS_DEVICE"},
		{0xA200000A, "ULTRASOUND_RX"},
		{0xA200000B, "ULTRASOUND_RX_DEDICATED"},
		{0xA200000C, "DUMMY_RX"},
	}}

	Instances = Table{name: "instance", entries: []Entry{
		{1, "INSTANCE_1"},
		{2, "INSTANCE_2"},
		{3, "INSTANCE_3"},
		{4, "INSTANCE_4"},
		{5, "INSTANCE_5"},
		{6, "INSTANCE_6"},
		{7, "INSTANCE_7"},
		{8, "INSTANCE_8"},
	}}

	// DevicePPs lists the device post-processing chains.
	DevicePPs = Table{name: "devicepp", entries: []Entry{
		{0xAC000001, "DEVICEPP_RX_DEFAULT"},
		{0xAC000002, "DEVICEPP_RX_AUDIO_MBDRC"},
		{0xAC000003, "DEVICEPP_RX_VOIP_MBDRC"},
		{0xAC000004, "DEVICEPP_RX_HFPSINK"},
		{0xAC000005, "DEVICEPP_RX_VOICE_DEFAULT"},
		{0xAC000006, "DEVICEPP_RX_ULTRASOUND_GENERATOR"},
		{0xAC000007, "DEVICEPP_RX_VOICE_RVE"},
		{0xAC000008, "DEVICEPP_RX_HPCM"},
		{0xAC000009, "DEVICEPP_RX_VOICE_Fluence_NN_NS"},
		{0xAC00000A, "DEVICEPP_RX_VOIP_Fluence_NN_NS"},
		{0xAC00000B, "DEVICEPP_RX_AUDIO_MSPP"},
		{0xAC00000C, "DEVICEPP_RX_BTSINK"},
		{0xAC00000D, "DEVICEPP_RX_HAPTICS_GENERATOR"},
	}}

	StreamPPs = Table{name: "streampp", entries: []Entry{
		{0xAF000001, "STREAMPP_RX_DEFAULT"},
	}}

	// Tags lists the module tags a graph may expose.
	Tags = Table{name: "tag", entries: []Entry{
		{0xC0000001, "SHMEM_ENDPOINT"},
		{0xC0000002, "STREAM_INPUT_MEDIA_FORMAT"},
		{0xC0000003, "STREAM_OUTPUT_MEDIA_FORMAT"},
		{0xC0000008, "DEVICE_SVA"},
		{0xC0000009, "DEVICE_ADAM"},
		{0xC000000C, "DEVICE_MFC"},
		{0xC000000E, "STREAM_PCM_DECODER"},
		{0xC000000F, "STREAM_PCM_ENCODER"},
		{0xC0000010, "STREAM_PCM_CONVERTER"},
		{0xC0000013, "STREAM_SPR"},
		{0xC0000020, "BT_PLACEHOLDER_ENCODER"},
		{0xC0000021, "COP_PACKETIZER_V0"},
		{0xC0000022, "RAT_RENDER"},
		{0xC0000023, "BT_PCM_CONVERTER"},
		{0xC0000024, "BT_PLACEHOLDER_DECODER"},
		{0xC0000028, "MODULE_VI"},
		{0xC0000029, "MODULE_SP"},
		{0xC000002A, "MODULE_GAPLESS"},
		{0xC000002C, "WR_SHMEM_ENDPOINT"},
		{0xC000002E, "RD_SHMEM_ENDPOINT"},
		{0xC000002F, "COP_PACKETIZER_V2"},
		{0xC0000030, "COP_DEPACKETIZER_V2"},
		{0xC0000031, "CONTEXT_DETECTION_ENGINE"},
		{0xC0000032, "ULTRASOUND_DETECTION_MODULE"},
		{0xC000003A, "DEVICE_POP_SUPPRESSOR"},
		{0xC000003D, "DEVICE_PP_MSIIR"},
		{0xC000003E, "MODULE_HAPTICS_VI"},
		{0xC000003F, "MODULE_HAPTICS_GEN"},
		{0xC0000043, "TAG_MODULE_MSPP"},
		{0xC0000044, "TAG_MODULE_CPS"},
		{0xC0000045, "MODULE_CONGESTION_BUFFER"},
		{0xC0000046, "MODULE_JITTER_BUFFER"},
		{0xC0000047, "MODULE_VI2"},
		{0xC0000048, "MODULE_SP2"},
		{0xC0000049, "TAG_MODULE_CPS2"},
		{0xC000004B, "TAG_MODULE_TSM"},
		{0xC0000040, "TAG_DEVICE_MUX"},
		{0xC0000004, "DEVICE_HW_ENDPOINT_RX"},
		{0xC0000019, "PER_STREAM_PER_DEVICE_MFC"},
	}}
)
